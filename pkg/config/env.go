// Package config reads simple environment settings with logged fallbacks.
// Unlike internal/pkg/config it carries no metrics; it is for the handful of
// process-level knobs (listen address, metrics port, cleanup interval).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// GetEnvString returns the variable's value, or defaultValue when unset.
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt parses the variable as an integer. Unset or unparseable values
// return the default, the latter with a warning.
func GetEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.Int("default", defaultValue))
		return defaultValue
	}

	return value
}

// GetEnvDuration parses the variable with time.ParseDuration ("30s", "5m").
// Unset or unparseable values return the default, the latter with a warning.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", valueStr),
			slog.String("default", defaultValue.String()))
		return defaultValue
	}

	return value
}
