package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"smart-news/internal/resilience/circuitbreaker"
	"smart-news/internal/resilience/retry"
	speechUC "smart-news/internal/usecase/speech"

	"github.com/sony/gobreaker"
)

// maxAudioResponseSize caps a synthesized audio download at 20MB.
const maxAudioResponseSize = 20 * 1024 * 1024

// HTTPTTSConfig configures a remote HTTP text-to-speech engine.
type HTTPTTSConfig struct {
	// Engine is the name used in logs, metrics, and the circuit breaker.
	Engine string
	// BaseURL is the synthesis endpoint, called with POST.
	BaseURL string
	// APIKey, when set, is sent as a bearer token.
	APIKey string
}

// HTTPTTSEngine synthesizes speech through a remote HTTP service that takes
// a JSON request and returns raw audio bytes.
type HTTPTTSEngine struct {
	cfg            HTTPTTSConfig
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewHTTPTTSEngine creates a remote TTS engine with the given configuration.
func NewHTTPTTSEngine(cfg HTTPTTSConfig, client *http.Client) *HTTPTTSEngine {
	return &HTTPTTSEngine{
		cfg:            cfg,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.SpeechEngineConfig(cfg.Engine)),
		retryConfig:    retry.SpeechEngineConfig(),
	}
}

// Name identifies the engine in logs and metrics.
func (e *HTTPTTSEngine) Name() string { return e.cfg.Engine }

// ttsRequest is the JSON body sent to the synthesis endpoint.
type ttsRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Synthesize posts the text to the remote service and returns its audio.
func (e *HTTPTTSEngine) Synthesize(ctx context.Context, text, language string) (*speechUC.Audio, error) {
	var audio *speechUC.Audio

	retryErr := retry.WithBackoff(ctx, e.retryConfig, func() error {
		cbResult, err := e.circuitBreaker.Execute(func() (interface{}, error) {
			return e.doSynthesize(ctx, text, language)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("speech engine circuit breaker open, request rejected",
					slog.String("service", e.circuitBreaker.Name()),
					slog.String("state", e.circuitBreaker.State().String()))
			}
			return err
		}

		audio = cbResult.(*speechUC.Audio)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}
	return audio, nil
}

func (e *HTTPTTSEngine) doSynthesize(ctx context.Context, text, language string) (*speechUC.Audio, error) {
	body, err := json.Marshal(ttsRequest{Text: text, Language: language})
	if err != nil {
		return nil, fmt.Errorf("marshal synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("synthesis failed for engine %s", e.cfg.Engine),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read synthesized audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("engine %s returned empty audio", e.cfg.Engine)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}

	return &speechUC.Audio{
		Data:     data,
		MIMEType: mimeType,
		Engine:   e.Name(),
	}, nil
}
