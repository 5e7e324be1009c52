package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sngm3741/higo-analytics/api/internal/logger"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr             string
	Environment      string
	MongoURI         string
	MongoDatabase    string
	RecordCollection string
	Timeout          time.Duration
	AllowedOrigins   []string
	ServerLog        zerolog.Logger
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	environment := envOrDefault("APP_ENV", "development")
	level := logger.ParseLevel(os.Getenv("LOG_LEVEL"))

	cfg := Config{
		Addr:             envOrDefault("HTTP_ADDR", ":4000"),
		Environment:      environment,
		MongoURI:         envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    envOrDefault("MONGO_DB", "higo"),
		RecordCollection: envOrDefault("RECORD_COLLECTION", "records"),
		Timeout:          timeout,
		AllowedOrigins:   parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		ServerLog:        logger.New("higo-analytics-api", level, os.Stdout),
	}

	cfg.ServerLog.Info().
		Str("env", environment).
		Str("db", cfg.MongoDatabase).
		Str("collection", cfg.RecordCollection).
		Msg("loaded config")

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
