// Package logging builds the slog loggers used across the API and the
// crawl worker.
package logging

import (
	"context"
	"log/slog"
	"os"

	"smart-news/internal/handler/http/requestid"
)

// NewLogger returns a JSON slog logger. LOG_LEVEL selects the level
// (debug, info, warn, error); anything else means info. Source locations
// are attached when the level is warn or lower.
func NewLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	})

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch s {
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

// WithRequestID attaches the request ID from ctx, when present, so all of a
// request's log lines can be pulled up together.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
