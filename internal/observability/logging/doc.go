// Package logging configures slog for the project.
//
// Both binaries call NewLogger at startup and install the result with
// slog.SetDefault. Handlers use WithRequestID to stamp every line of a
// request with the ID minted by the requestid middleware:
//
//	logger := logging.WithRequestID(r.Context(), slog.Default())
//	logger.Info("search recorded", slog.String("language", lang))
package logging
