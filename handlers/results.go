// handlers/results.go - Result HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wodboard/models"
	"wodboard/services"
	"wodboard/utils"
)

// ListResults lists every result, or one workout's with ?workout_id=
// GET /api/admin/results
func ListResults(c *fiber.Ctx) error {
	var (
		results []models.Result
		err     error
	)
	if workoutID := c.Query("workout_id"); workoutID != "" {
		results, err = resultService.ListByWorkout(workoutID)
	} else {
		results, err = resultService.List()
	}
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"results": results})
}

// CreateResult records a time. The time is given either as time_seconds
// or as minutes and seconds.
// POST /api/admin/results
func CreateResult(c *fiber.Ctx) error {
	var req struct {
		TeamID      string `json:"team_id"`
		WorkoutID   string `json:"workout_id"`
		TimeSeconds int    `json:"time_seconds"`
		Minutes     *int   `json:"minutes"`
		Seconds     *int   `json:"seconds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	timeSeconds := req.TimeSeconds
	if req.Minutes != nil || req.Seconds != nil {
		var minutes, seconds int
		if req.Minutes != nil {
			minutes = *req.Minutes
		}
		if req.Seconds != nil {
			seconds = *req.Seconds
		}
		total, err := utils.ElapsedSeconds(minutes, seconds)
		if err != nil {
			return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
		}
		timeSeconds = total
	}

	result, err := resultService.Record(services.RecordInput{
		TeamID:      req.TeamID,
		WorkoutID:   req.WorkoutID,
		TimeSeconds: timeSeconds,
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{
		"message": "Result recorded",
		"result":  result,
		"elapsed": utils.FormatElapsed(result.TimeSeconds),
	})
}

// DeleteResult removes a result and re-ranks its workout
// DELETE /api/admin/results/:id
func DeleteResult(c *fiber.Ctx) error {
	if err := resultService.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "Result deleted successfully"})
}
