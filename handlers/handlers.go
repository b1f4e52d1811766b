// handlers/handlers.go - Service wiring and error mapping for the HTTP handlers
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wodboard/database"
	"wodboard/log"
	"wodboard/realtime"
	"wodboard/services"
	"wodboard/utils"
)

var (
	teamService    *services.TeamService
	workoutService *services.WorkoutService
	resultService  *services.ResultService
	heatService    *services.HeatService
	rankingService *services.RankingService
	broker         *realtime.Broker
)

// Init wires the handlers to the services and the change broker
func Init(svc *services.Services, events *realtime.Broker) {
	if svc == nil {
		panic("services not initialized before handlers.Init")
	}
	teamService = svc.Teams
	workoutService = svc.Workouts
	resultService = svc.Results
	heatService = svc.Heats
	rankingService = svc.Rankings
	broker = events
}

// fail maps service errors onto HTTP responses. Unknown errors go to the
// app error handler.
func fail(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		return utils.JSONError(c, fiber.StatusBadRequest, validation.Message)
	case errors.Is(err, services.ErrDuplicateResult):
		return utils.JSONError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, database.ErrNotFound):
		return utils.JSONError(c, fiber.StatusNotFound, "Not found")
	default:
		return err
	}
}

// ErrorHandler renders errors as JSON. 500 messages are masked in production.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code == fiber.StatusInternalServerError {
			log.WithComponent("http").Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("Request failed")
			if production {
				message = "An error occurred. Please try again later."
			}
		}

		return utils.JSONError(c, code, message)
	}
}
