// main.go - wodboard HTTP server
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"wodboard/config"
	"wodboard/database"
	"wodboard/handlers"
	"wodboard/handlers/admin"
	"wodboard/log"
	"wodboard/middleware"
	"wodboard/realtime"
	"wodboard/services"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.FromEnv()
	log.Init(log.Config{Level: log.Level(cfg.LogLevel), JSONOutput: cfg.LogJSON})
	if envErr != nil {
		log.Warn(".env file not found, using system environment variables")
	}
	if err != nil {
		log.Fatal("Invalid configuration", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal("Invalid configuration", err)
	}
	if cfg.IsProduction() && cfg.CORSOrigin == config.Defaults().CORSOrigin {
		log.Warn("CORS_ORIGINS not properly configured for production")
	}

	store, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to open store", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", err)
	}
	if err := services.RefreshGauges(store); err != nil {
		log.Errorf("Failed to initialise gauges", err)
	}

	broker := realtime.NewBroker(50)
	broker.Start()
	defer broker.Stop()

	svc := services.New(store, broker, services.Options{
		GroupSize: cfg.HeatGroupSize,
		Location:  cfg.Location,
	})
	handlers.Init(svc, broker)
	admin.Init(svc.Admins, cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(cfg.IsProduction()),
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.CORSOrigin != "*",
	}))

	opts := handlers.RouteOptions{JWTSecret: cfg.JWTSecret}
	if cfg.RateLimitEnabled {
		opts.Limiter = middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
		opts.LoginLimiter = middleware.NewRateLimiter(cfg.AuthRateLimitMax, cfg.AuthRateLimitWindow)
		go opts.Limiter.RunCleanup(ctx)
		go opts.LoginLimiter.RunCleanup(ctx)
	}
	handlers.SetupRoutes(app, opts)

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		broker.Stop()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("Shutdown failed", err)
		}
	}()

	log.Logger.Info().
		Str("port", cfg.Port).
		Str("env", cfg.AppEnv).
		Str("store", cfg.StoreDriver).
		Str("timezone", cfg.Location.String()).
		Msg("HTTP server starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorf("HTTP server failed", err)
	}
}
