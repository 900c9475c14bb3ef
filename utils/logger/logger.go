// ABOUTME: This file provides structured slog logging for the news-explainer service
// ABOUTME: Level and format are environment-driven with JSON output by default
package logger

import (
	"log/slog"
	"os"
)

// Logger is the process-wide fallback logger. bootstrap replaces it with a
// configured instance at startup; tests may leave it as-is.
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// LoggerConfig controls handler construction.
type LoggerConfig struct {
	Level       string
	Format      string
	ServiceName string
}

// LoadLoggerConfigFromEnv reads logger settings from the environment.
func LoadLoggerConfigFromEnv() *LoggerConfig {
	return &LoggerConfig{
		Level:       getEnvOrDefault("LOG_LEVEL", "info"),
		Format:      getEnvOrDefault("LOG_FORMAT", "json"),
		ServiceName: getEnvOrDefault("SERVICE_NAME", "news-explainer"),
	}
}

// New builds a slog.Logger from the given configuration.
func New(config *LoggerConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	var handler slog.Handler
	if config.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("service", config.ServiceName)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
