package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/climatrack/climatrack/internal/api/http"
	"github.com/climatrack/climatrack/internal/config"
	"github.com/climatrack/climatrack/internal/ingest"
	"github.com/climatrack/climatrack/internal/scheduler"
	"github.com/climatrack/climatrack/internal/store"
	"github.com/climatrack/climatrack/internal/upstream"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Append-only observation store.
	memStore := store.NewMemoryStore()

	// Upstream clients for the weather, pollution and geocode services.
	client := upstream.NewClient(upstream.Config{
		APIKey:     cfg.APIKey,
		HTTPClient: httpClient,
	})

	// Core service orchestrating the ingestion pipeline.
	service := ingest.NewService(memStore, client)

	// Scheduler that periodically ingests the roster.
	sched := scheduler.New(cfg, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "climatrack",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowCredentials: true,
	}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "climatrack",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, cfg, service, client, memStore)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
