// handlers/workouts.go - Workout HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wodboard/services"
	"wodboard/utils"
)

// ================== PUBLIC ==================

// GetWorkouts lists workouts with completion stats
// GET /api/workouts
func GetWorkouts(c *fiber.Ctx) error {
	summaries, err := workoutService.Summaries(false)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"workouts": summaries})
}

// GetWorkout returns a visible workout with its results
// GET /api/workouts/:id
func GetWorkout(c *fiber.Ctx) error {
	detail, err := workoutService.Detail(c.Params("id"), false)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"workout": detail})
}

// ================== ADMIN ==================

// ListAllWorkouts lists every workout with stats, hidden ones included
// GET /api/admin/workouts
func ListAllWorkouts(c *fiber.Ctx) error {
	summaries, err := workoutService.Summaries(true)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"workouts": summaries})
}

// CreateWorkout creates a workout
// POST /api/admin/workouts
func CreateWorkout(c *fiber.Ctx) error {
	var req services.WorkoutInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	workout, err := workoutService.Create(req)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{
		"message": "Workout created successfully",
		"workout": workout,
	})
}

// UpdateWorkout replaces a workout's fields
// PUT /api/admin/workouts/:id
func UpdateWorkout(c *fiber.Ctx) error {
	var req services.WorkoutInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	workout, err := workoutService.Update(c.Params("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"workout": workout})
}

// SetWorkoutVisibility shows or hides a workout
// POST /api/admin/workouts/:id/visibility
func SetWorkoutVisibility(c *fiber.Ctx) error {
	var req struct {
		IsVisible *bool `json:"is_visible"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsVisible == nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "is_visible is required")
	}

	workout, err := workoutService.SetVisibility(c.Params("id"), *req.IsVisible)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"workout": workout})
}

// DeleteWorkout removes a workout and its results
// DELETE /api/admin/workouts/:id
func DeleteWorkout(c *fiber.Ctx) error {
	if err := workoutService.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "Workout deleted successfully"})
}
