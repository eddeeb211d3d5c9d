package pathutil

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID extracts and validates a UUID from a URL path.
// It removes the specified prefix and parses the remaining string as a UUID.
//
// Example:
//
//	id, err := ExtractID("/v1/history/6f1e8a34-...", "/v1/history/")
func ExtractID(path, prefix string) (string, error) {
	idStr := strings.TrimPrefix(path, prefix)
	if idStr == "" || strings.Contains(idStr, "/") {
		return "", ErrInvalidID
	}
	parsed, err := uuid.Parse(idStr)
	if err != nil {
		return "", ErrInvalidID
	}
	return parsed.String(), nil
}
