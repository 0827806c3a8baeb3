package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dquispe/agrosat-advisor/internal/advisor"
	httpapi "github.com/dquispe/agrosat-advisor/internal/api/http"
	"github.com/dquispe/agrosat-advisor/internal/config"
	"github.com/dquispe/agrosat-advisor/internal/database"
	"github.com/dquispe/agrosat-advisor/internal/logging"
	"github.com/dquispe/agrosat-advisor/internal/meteo"
	"github.com/dquispe/agrosat-advisor/internal/recommend"
	"github.com/dquispe/agrosat-advisor/internal/scheduler"
	"github.com/dquispe/agrosat-advisor/internal/store"
	"github.com/dquispe/agrosat-advisor/internal/weather"
)

const appName = "agrosat-advisor"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.AppEnv, cfg.LogLevel, appName)
	slog.SetDefault(log)

	// Database + schema.
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	cropStore := store.NewCropStore(db)
	recStore := store.NewRecommendationStore(db)
	userStore := store.NewUserStore(db)
	cacheStore := store.NewWeatherCacheStore(db)

	if err := cropStore.Seed(context.Background(), store.DefaultCrops()); err != nil {
		log.Error("failed to seed crop types", "error", err)
		os.Exit(1)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	geocoder := meteo.NewGeocodingClient(httpClient, cfg.GeocodingURL)
	forecaster := meteo.NewForecastClient(httpClient, cfg.ForecastURL)
	reverse := meteo.NewReverseClient(httpClient, cfg.ReverseURL, cfg.UserAgent)

	weatherSvc := weather.NewService(cacheStore, geocoder, forecaster, cfg.WeatherCacheTTL, log)
	recommender := recommend.NewService(cropStore, recStore)

	// Advisor with mock fallback.
	var llm advisor.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = advisor.NewOpenAI(httpClient, cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		log.Info("no LLM endpoint configured, using mock advisor")
		llm = advisor.NewMock()
	}

	// Background cache housekeeping.
	sched := scheduler.New(cacheStore, cfg.CachePruneInterval, cfg.CacheMaxAge, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               appName,
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

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Recommender: recommender,
		Weather:     weatherSvc,
		Reverse:     reverse,
		Crops:       cropStore,
		Users:       userStore,
		Advisor:     llm,
	})

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
