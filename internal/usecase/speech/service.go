package speech

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"smart-news/internal/observability/metrics"
	"smart-news/internal/utils/text"

	"golang.org/x/time/rate"
)

const (
	// MaxTextLength caps a single synthesis request.
	MaxTextLength = 5000

	// maxReadAloudRunes caps how much of a fetched article is read aloud.
	maxReadAloudRunes = 3000
)

// Service provides synthesis, read-aloud, and transcription use cases.
// Strategies are tried in order; the chain stops at the first success.
type Service struct {
	Strategies     []Strategy
	Transcriber    Transcriber
	ContentFetcher ContentFetcher

	// limiter paces synthesis calls so a burst of requests cannot saturate
	// the engines, which are external services or subprocesses.
	limiter *rate.Limiter
}

// NewService creates a speech Service.
//
// Parameters:
//   - strategies: synthesis engines in fallback order, most preferred first
//   - transcriber: speech-to-text engine (can be nil to disable)
//   - contentFetcher: article content fetcher for read-aloud (can be nil)
//   - perSecond: synthesis rate limit; zero or negative disables pacing
func NewService(strategies []Strategy, transcriber Transcriber, contentFetcher ContentFetcher, perSecond float64) *Service {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), int(perSecond)+1)
	}
	return &Service{
		Strategies:     strategies,
		Transcriber:    transcriber,
		ContentFetcher: contentFetcher,
		limiter:        limiter,
	}
}

// Synthesize renders text to audio by folding over the strategy chain.
// An empty or "auto" language is detected from the text's character set.
// Returns ErrAllEnginesFailed only when every strategy failed.
func (s *Service) Synthesize(ctx context.Context, textIn, language string) (*Audio, error) {
	if textIn == "" {
		return nil, ErrEmptyText
	}
	if len([]rune(textIn)) > MaxTextLength {
		return nil, ErrTextTooLong
	}
	if language == "" || language == "auto" {
		language = DetectLanguage(textIn)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("synthesis rate limit: %w", err)
	}

	var lastErr error
	for _, strategy := range s.Strategies {
		start := time.Now()
		audio, err := strategy.Synthesize(ctx, textIn, language)
		metrics.RecordSynthesis(strategy.Name(), err == nil, time.Since(start))

		if err == nil {
			slog.Info("speech synthesized",
				slog.String("engine", strategy.Name()),
				slog.String("language", language),
				slog.Int("bytes", len(audio.Data)))
			return audio, nil
		}

		slog.Warn("speech engine failed, trying next",
			slog.String("engine", strategy.Name()),
			slog.String("language", language),
			slog.Any("error", err))
		lastErr = err
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllEnginesFailed, lastErr)
	}
	return nil, ErrAllEnginesFailed
}

// ReadArticle fetches the readable text of an article and synthesizes it.
// Long articles are truncated before synthesis.
func (s *Service) ReadArticle(ctx context.Context, url, language string) (*Audio, error) {
	if s.ContentFetcher == nil {
		return nil, fmt.Errorf("read-aloud not configured")
	}

	content, err := s.ContentFetcher.FetchContent(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch article content: %w", err)
	}

	return s.Synthesize(ctx, text.Truncate(content, maxReadAloudRunes), language)
}

// Transcribe converts recorded speech to text.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if s.Transcriber == nil {
		return "", ErrNoTranscriber
	}

	transcript, err := s.Transcriber.Transcribe(ctx, audio, filename)
	metrics.RecordTranscription(err == nil)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return transcript, nil
}
