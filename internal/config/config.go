package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	AppEnv   string
	LogLevel slog.Level

	// DBPath is the sqlite file. Empty means an in-memory database.
	DBPath string

	// HTTPTimeout bounds outbound calls to the external services.
	HTTPTimeout time.Duration

	// WeatherCacheTTL is the freshness window for cached forecasts.
	WeatherCacheTTL time.Duration

	// Cache housekeeping: prune rows older than CacheMaxAge every
	// CachePruneInterval.
	CachePruneInterval time.Duration
	CacheMaxAge        time.Duration

	// External service base URLs; empty selects the public endpoints.
	GeocodingURL string
	ForecastURL  string
	ReverseURL   string
	UserAgent    string

	// Advisor (OpenAI-compatible). Empty endpoint or key selects the mock.
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:         getenvDefault("PORT", "8080"),
		AppEnv:       getenvDefault("APP_ENV", "dev"),
		DBPath:       getenvDefault("DB_PATH", "agrosat.db"),
		GeocodingURL: os.Getenv("GEOCODING_URL"),
		ForecastURL:  os.Getenv("FORECAST_URL"),
		ReverseURL:   os.Getenv("REVERSE_GEOCODING_URL"),
		UserAgent:    getenvDefault("HTTP_USER_AGENT", "agrosat-advisor/1.0"),
		LLMEndpoint:  os.Getenv("LLM_ENDPOINT"),
		LLMAPIKey:    os.Getenv("LLM_API_KEY"),
		LLMModel:     getenvDefault("LLM_MODEL", "gpt-4o-mini"),
	}

	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	for _, d := range []struct {
		key  string
		def  string
		dest *time.Duration
	}{
		{"HTTP_TIMEOUT", "10s", &cfg.HTTPTimeout},
		{"WEATHER_CACHE_TTL", "15m", &cfg.WeatherCacheTTL},
		{"CACHE_PRUNE_INTERVAL", "1h", &cfg.CachePruneInterval},
		{"CACHE_MAX_AGE", "24h", &cfg.CacheMaxAge},
	} {
		v, err := time.ParseDuration(getenvDefault(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dest = v
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
