// handlers/heats.go - Heat scheduling HTTP handlers
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wodboard/services"
	"wodboard/utils"
)

// GetHeats returns heat stats, the start time and the timetable
// GET /api/heats
func GetHeats(c *fiber.Ctx) error {
	overview, err := heatService.Overview()
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"stats":      overview.Stats,
		"start_time": overview.StartTime,
		"schedule":   overview.Schedule,
	})
}

type startTimeRequest struct {
	StartTime string `json:"start_time"`
}

// GenerateHeats shuffles every team into heats
// POST /api/admin/heats/generate
func GenerateHeats(c *fiber.Ctx) error {
	var req startTimeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	result, err := heatService.Generate(req.StartTime)
	if errors.Is(err, services.ErrEmptyRoster) {
		return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
			"assigned": 0,
			"notice":   "No teams to assign",
		})
	}
	if err != nil {
		return fail(c, err)
	}

	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"assigned":      result.Assigned,
		"total_heats":   result.TotalHeats,
		"start_time":    result.StartTime,
		"lane_fallback": result.LaneFallback,
		"assignments":   result.Assignments,
	})
}

// ResetHeats clears every heat assignment and the start time
// POST /api/admin/heats/reset
func ResetHeats(c *fiber.Ctx) error {
	cleared, err := heatService.Reset()
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"cleared": cleared})
}

// SetHeatStartTime changes the competition start time
// PUT /api/admin/heats/start-time
func SetHeatStartTime(c *fiber.Ctx) error {
	var req startTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	clock, err := heatService.SetStartTime(req.StartTime)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"start_time": clock})
}
