// handlers/routes.go - Route table
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/websocket/v2"

	"wodboard/handlers/admin"
	"wodboard/metrics"
	"wodboard/middleware"
)

// RouteOptions carries what the route table needs beyond the services.
// Nil limiters disable rate limiting.
type RouteOptions struct {
	JWTSecret    string
	Limiter      *middleware.RateLimiter
	LoginLimiter *middleware.RateLimiter
}

// SetupRoutes registers every endpoint on app
func SetupRoutes(app *fiber.App, opts RouteOptions) {
	app.Use(middleware.Metrics())
	if opts.Limiter != nil {
		app.Use(middleware.RateLimit(opts.Limiter))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Get("/ws", RequireUpgrade, websocket.New(RealtimeFeed))

	api := app.Group("/api")

	// Public views
	api.Get("/rankings", GetRankings)
	api.Get("/workouts", GetWorkouts)
	api.Get("/workouts/:id", GetWorkout)
	api.Get("/heats", GetHeats)

	// Admin routes
	adminGroup := api.Group("/admin")
	if opts.LoginLimiter != nil {
		adminGroup.Post("/login", middleware.AuthRateLimit(opts.LoginLimiter), admin.Login)
	} else {
		adminGroup.Post("/login", admin.Login)
	}

	// Protected admin routes
	protected := adminGroup.Group("", middleware.AdminAuth(opts.JWTSecret))
	protected.Get("/verify", admin.VerifyToken)
	protected.Get("/rankings", GetAdminRankings)

	protected.Get("/teams", ListTeams)
	protected.Post("/teams", CreateTeam)
	protected.Put("/teams/:id", UpdateTeam)
	protected.Delete("/teams/:id", DeleteTeam)

	protected.Get("/workouts", ListAllWorkouts)
	protected.Post("/workouts", CreateWorkout)
	protected.Put("/workouts/:id", UpdateWorkout)
	protected.Delete("/workouts/:id", DeleteWorkout)
	protected.Post("/workouts/:id/visibility", SetWorkoutVisibility)

	protected.Get("/results", ListResults)
	protected.Post("/results", CreateResult)
	protected.Delete("/results/:id", DeleteResult)

	protected.Post("/heats/generate", GenerateHeats)
	protected.Post("/heats/reset", ResetHeats)
	protected.Put("/heats/start-time", SetHeatStartTime)
}
