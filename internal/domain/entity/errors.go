package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when the requested record does
// not exist. Handlers map it to 404.
var ErrNotFound = errors.New("entity not found")

// ValidationError reports which field of an entity failed which check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
