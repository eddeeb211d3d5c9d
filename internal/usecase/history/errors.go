// Package history provides use cases for the search history store.
// Recording is asynchronous and fire-and-forget; reads are plain queries.
package history

import "errors"

// Sentinel errors for history operations.
var (
	// ErrRecordNotFound indicates that no history record exists for the id.
	ErrRecordNotFound = errors.New("history record not found")
)
