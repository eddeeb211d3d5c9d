// Package worker runs the background feed crawler: on a cron schedule it
// fetches every configured source, normalizes the entries, and stores the
// new ones so searches have a warm corpus even when sources are slow.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"smart-news/internal/pkg/config"
)

// WorkerConfig holds the worker's operational settings, loaded from the
// environment with fail-open fallbacks.
type WorkerConfig struct {
	// CronSchedule is the crawl schedule as a 5-field cron expression.
	// Default: every 30 minutes.
	CronSchedule string

	// Timezone is the IANA timezone for cron evaluation.
	Timezone string

	// CrawlMaxConcurrent caps how many sources are crawled at once.
	CrawlMaxConcurrent int

	// CrawlTimeout bounds a full crawl run across all sources.
	CrawlTimeout time.Duration

	// HealthPort serves the liveness and readiness probes.
	HealthPort int
}

// DefaultConfig returns the default worker configuration.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:       "*/30 * * * *",
		Timezone:           "Asia/Ho_Chi_Minh",
		CrawlMaxConcurrent: 5,
		CrawlTimeout:       10 * time.Minute,
		HealthPort:         9091,
	}
}

// Validate checks all fields and aggregates every violation into one error.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.CrawlMaxConcurrent, 1, 50); err != nil {
		errs = append(errs, fmt.Errorf("crawl max concurrent: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.CrawlTimeout); err != nil {
		errs = append(errs, fmt.Errorf("crawl timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration from environment
// variables. Invalid values fall back to defaults with a warning and a
// metrics increment; the returned configuration is always valid.
//
// Environment variables:
//   - CRAWL_SCHEDULE: cron expression (default: "*/30 * * * *")
//   - WORKER_TIMEZONE: IANA timezone (default: "Asia/Ho_Chi_Minh")
//   - CRAWL_MAX_CONCURRENT: integer 1-50 (default: 5)
//   - CRAWL_TIMEOUT: duration string, e.g. "10m"
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	warnFallback := func(field string, result config.ConfigLoadResult) {
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range result.Warnings {
			logger.Warn("configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("CRAWL_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		warnFallback("crawl_schedule", result)
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		warnFallback("timezone", result)
	}

	result = config.LoadEnvInt("CRAWL_MAX_CONCURRENT", cfg.CrawlMaxConcurrent, func(v int) error {
		return config.ValidateIntRange(v, 1, 50)
	})
	cfg.CrawlMaxConcurrent = result.Value.(int)
	if result.FallbackApplied {
		warnFallback("crawl_max_concurrent", result)
	}

	result = config.LoadEnvDuration("CRAWL_TIMEOUT", cfg.CrawlTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.CrawlTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		warnFallback("crawl_timeout", result)
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		warnFallback("health_port", result)
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
