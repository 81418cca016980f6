package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/skywatch/internal/api/http"
	"github.com/i474232898/skywatch/internal/app"
	"github.com/i474232898/skywatch/internal/config"
	"github.com/i474232898/skywatch/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	log := logging.New(cfg)
	slog.SetDefault(log)

	if cfg.LCOToken == "" {
		log.Info("LCO_API_TOKEN not set; using public endpoints only")
	}

	a := app.New(cfg, log)

	srv := fiber.New(fiber.Config{
		AppName:               "skywatch",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Live requests may probe up to four endpoints before fetching data.
		WriteTimeout: 6 * cfg.HTTPTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	srv.Use(logger.New())
	srv.Use(recover.New())

	srv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "skywatch",
		})
	})

	srv.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})))

	httpapi.RegisterRoutes(srv, a.Selector, a.Sites)

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := srv.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "err", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "err", err)
	}
}
