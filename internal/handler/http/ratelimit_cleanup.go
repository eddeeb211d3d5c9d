package http

import (
	"context"
	"log/slog"
	"time"

	"smart-news/pkg/config"
)

// DefaultCleanupInterval is the default cleanup interval if not specified.
const DefaultCleanupInterval = 5 * time.Minute

// StartRateLimitCleanup runs a background loop that periodically removes
// expired entries from the rate limiter, preventing unbounded memory growth
// from one-off client IPs. It stops when the context is cancelled.
func StartRateLimitCleanup(
	ctx context.Context,
	limiter *RateLimiter,
	interval time.Duration,
	limiterType string,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter_type", limiterType),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped",
				slog.String("limiter_type", limiterType))
			return

		case <-ticker.C:
			limiter.CleanupExpired()

			slog.Debug("rate limit cleanup completed",
				slog.String("limiter_type", limiterType))
		}
	}
}

// LoadCleanupInterval reads RATELIMIT_CLEANUP_INTERVAL from the environment,
// falling back to the default on absence or parse failure.
func LoadCleanupInterval() time.Duration {
	return config.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval)
}
