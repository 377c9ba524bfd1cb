package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/clima/internal/api/http"
	"github.com/i474232898/clima/internal/config"
	"github.com/i474232898/clima/internal/location"
	"github.com/i474232898/clima/internal/notify"
	"github.com/i474232898/clima/internal/scheduler"
	"github.com/i474232898/clima/internal/weather"
	"github.com/i474232898/clima/internal/weather/openweather"
)

func main() {
	// Load configuration (also reads .env).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Display board: what a screen would show, with bounded history.
	board := notify.NewBoard(cfg.BoardMaxHistory, cfg.BoardMaxAge)

	observers := notify.Tee{notify.Logger{}, board}
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := notify.DialPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("failed to connect to kafka: %v", err)
		}
		defer publisher.Close()
		observers = append(observers, publisher)
	}

	fetcher := openweather.NewFetcher(httpClient, cfg.OpenWeatherAPIKey, observers,
		openweather.WithBaseURL(cfg.OpenWeatherBaseURL),
	)

	locator := newLocator(cfg)
	sched := scheduler.New(cfg.WatchLocations, cfg.WatchInterval, fetcher)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Resolve the home location once at startup, the way a device reports
	// its position when the app opens.
	location.Request(context.Background(), locator,
		func(c weather.Coordinates) { fetcher.Fetch(weather.CoordinatesQuery(c.Lat, c.Lon)) },
		func(err error) { log.Printf("INFO: home location not resolved: %v", err) },
	)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "clima",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "clima",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, fetcher, board, locator)

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

func newLocator(cfg *config.AppConfig) location.Provider {
	switch {
	case cfg.Home != nil:
		return location.Static(*cfg.Home)
	case cfg.HomeCity != "":
		return location.NewGeocoder(cfg.GeocoderAPIKey, cfg.HomeCity, cfg.HomeCountry)
	default:
		return location.Unavailable{}
	}
}
