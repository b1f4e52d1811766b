// handlers/teams.go - Team roster HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"wodboard/services"
	"wodboard/utils"
)

// ListTeams lists every team ordered by name
// GET /api/admin/teams
func ListTeams(c *fiber.Ctx) error {
	teams, err := teamService.List()
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"teams": teams})
}

// CreateTeam creates a team
// POST /api/admin/teams
func CreateTeam(c *fiber.Ctx) error {
	var req services.TeamInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	team, err := teamService.Create(req)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{
		"message": "Team created successfully",
		"team":    team,
	})
}

// UpdateTeam replaces a team's name, members and avatar
// PUT /api/admin/teams/:id
func UpdateTeam(c *fiber.Ctx) error {
	var req services.TeamInput
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	team, err := teamService.Update(c.Params("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"team": team})
}

// DeleteTeam removes a team and its results
// DELETE /api/admin/teams/:id
func DeleteTeam(c *fiber.Ctx) error {
	if err := teamService.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"message": "Team deleted successfully"})
}
