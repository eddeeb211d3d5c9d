// Package speech provides text-to-speech and speech-to-text use cases.
// Synthesis engines are modeled as an ordered strategy list: the chain
// tries each engine in turn and stops at the first success.
package speech

import "errors"

// Sentinel errors for speech operations.
var (
	// ErrAllEnginesFailed indicates that every synthesis strategy in the
	// chain failed for this request.
	ErrAllEnginesFailed = errors.New("all speech engines failed")

	// ErrEmptyText indicates a synthesis request with no text.
	ErrEmptyText = errors.New("text is empty")

	// ErrTextTooLong indicates a synthesis request above the length cap.
	ErrTextTooLong = errors.New("text exceeds maximum length")

	// ErrNoTranscriber indicates that transcription is not configured.
	ErrNoTranscriber = errors.New("no transcription engine configured")
)
