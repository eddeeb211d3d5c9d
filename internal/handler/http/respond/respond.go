// Package respond writes JSON responses and keeps internal error detail out
// of what clients see.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダー送信済みなのでログに残すしかない
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes the error message as a JSON body without any filtering.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// clientSafeMarkers are substrings of messages that are fine to show to a
// caller. Anything else, and every 5xx regardless, becomes a generic body
// with the real error going to the log.
var clientSafeMarkers = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"cannot be",
	"too long",
	"too large",
	"unauthorized",
	"forbidden",
	"unsupported",
	"rate limit",
	"not configured",
}

// SafeError decides whether err may be shown to the client. Validation and
// auth failures pass through; upstream fetch errors, SQL errors and the like
// are logged with secrets masked and replaced with a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	lowerMsg := strings.ToLower(msg)

	safe := false
	for _, marker := range clientSafeMarkers {
		if strings.Contains(lowerMsg, marker) {
			safe = true
			break
		}
	}
	if code >= 500 {
		safe = false
	}

	if safe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("request failed",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}
