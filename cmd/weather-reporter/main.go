package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kelvins/geocoder"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sashabaranov/go-openai"

	httpapi "github.com/i474232898/weather-reporter/internal/api/http"
	"github.com/i474232898/weather-reporter/internal/config"
	"github.com/i474232898/weather-reporter/internal/mailer"
	"github.com/i474232898/weather-reporter/internal/narrator"
	"github.com/i474232898/weather-reporter/internal/report"
	"github.com/i474232898/weather-reporter/internal/scheduler"
	"github.com/i474232898/weather-reporter/internal/weather"
	"github.com/i474232898/weather-reporter/internal/weather/openweather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Weather provider.
	owm := openweather.NewClient(httpClient, cfg.OWMAPIKey)

	// Persona narrator backed by Azure OpenAI.
	personas, err := narrator.LoadPersonas(cfg.PersonaFile)
	if err != nil {
		log.Fatalf("failed to load persona registry: %v", err)
	}

	azureCfg := openai.DefaultAzureConfig(cfg.AzureOpenAIAPIKey, cfg.AzureOpenAIEndpoint)
	azureCfg.APIVersion = cfg.AzureOpenAIAPIVersion
	narr, err := narrator.New(openai.NewClientWithConfig(azureCfg), cfg.AzureOpenAIDeployment, personas, nil)
	if err != nil {
		log.Fatalf("failed to create narrator: %v", err)
	}

	// Email dispatch.
	sender := mailer.NewSendGridSender(cfg.SendGridAPIKey, cfg.SenderEmail)

	// Core service orchestrating the per-location report pipeline.
	svc := report.NewService(owm, narr, sender, cfg.HTMLEmail)

	// Optional geocoding fallback for the pollution lookup.
	if cfg.GeocoderAPIKey != "" {
		geocoder.ApiKey = cfg.GeocoderAPIKey
		svc.Geocode = func(loc weather.Location) (float64, float64, error) {
			resolved, err := geocoder.Geocoding(geocoder.Address{City: loc.City, Country: loc.Country})
			if err != nil {
				return 0, 0, err
			}
			return resolved.Latitude, resolved.Longitude, nil
		}
	}

	// Optional daily scheduled report.
	defaultTZ, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		log.Fatalf("invalid DEFAULT_TIMEZONE %q: %v", cfg.DefaultTimezone, err)
	}
	sched := scheduler.New(svc, report.Request{
		Locations:   cfg.DailyReportLocations,
		Preferences: weather.DefaultPreferences(),
		Recipients:  cfg.DailyReportRecipients,
		Timezone:    cfg.DefaultTimezone,
	}, cfg.DailyReportAt, defaultTZ)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-reporter",
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
			"service": "weather-reporter",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, svc, cfg.DefaultTimezone)

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
