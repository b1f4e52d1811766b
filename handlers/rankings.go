// handlers/rankings.go - Leaderboard HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wodboard/utils"
)

// GetRankings returns the public leaderboard over visible workouts
// GET /api/rankings
func GetRankings(c *fiber.Ctx) error {
	rankings, err := rankingService.Rankings(false)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"rankings": rankings})
}

// GetAdminRankings returns the leaderboard over every workout
// GET /api/admin/rankings
func GetAdminRankings(c *fiber.Ctx) error {
	rankings, err := rankingService.Rankings(true)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"rankings": rankings})
}
