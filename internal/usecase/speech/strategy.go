package speech

import (
	"context"
	"io"
)

// Strategy is one synthesis engine in the fallback chain.
type Strategy interface {
	// Name identifies the engine in logs and metrics.
	Name() string
	// Synthesize renders text to audio. The language is a tag like "vi";
	// engines map it to their own voice identifiers.
	Synthesize(ctx context.Context, text, language string) (*Audio, error)
}

// Audio is the product of one successful synthesis.
type Audio struct {
	Data     []byte
	MIMEType string
	Engine   string
}

// Transcriber converts recorded speech to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// ContentFetcher retrieves the readable text of an article page, used by
// the read-aloud mode.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}
