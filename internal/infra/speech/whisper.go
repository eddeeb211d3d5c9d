package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"smart-news/internal/resilience/circuitbreaker"
	"smart-news/internal/resilience/retry"

	"github.com/sony/gobreaker"
)

// maxUploadSize caps a transcription upload at 25MB, matching the usual
// Whisper endpoint limit.
const maxUploadSize = 25 * 1024 * 1024

// WhisperConfig configures the Whisper-compatible transcription client.
type WhisperConfig struct {
	// BaseURL is the transcription endpoint, called with multipart POST.
	BaseURL string
	// APIKey, when set, is sent as a bearer token.
	APIKey string
	// Model names the transcription model, e.g. "whisper-1".
	Model string
}

// WhisperClient implements speech.Transcriber against a Whisper-compatible
// HTTP API (multipart audio upload, JSON transcript response).
type WhisperClient struct {
	cfg            WhisperConfig
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewWhisperClient creates a transcription client with the given configuration.
func NewWhisperClient(cfg WhisperConfig, client *http.Client) *WhisperClient {
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	return &WhisperClient{
		cfg:            cfg,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.SpeechEngineConfig("whisper")),
		retryConfig:    retry.SpeechEngineConfig(),
	}
}

// transcriptResponse is the JSON body returned by the endpoint.
type transcriptResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio and returns the recognized text.
// The audio is buffered up front so retries can resend the same body.
func (w *WhisperClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(audio, maxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("audio is empty")
	}
	if len(data) > maxUploadSize {
		return "", fmt.Errorf("audio exceeds %d byte upload limit", maxUploadSize)
	}

	var transcript string

	retryErr := retry.WithBackoff(ctx, w.retryConfig, func() error {
		cbResult, err := w.circuitBreaker.Execute(func() (interface{}, error) {
			return w.doTranscribe(ctx, data, filename)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("transcription circuit breaker open, request rejected",
					slog.String("service", w.circuitBreaker.Name()),
					slog.String("state", w.circuitBreaker.State().String()))
			}
			return err
		}

		transcript = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", retryErr
	}
	return transcript, nil
}

func (w *WhisperClient) doTranscribe(ctx context.Context, data []byte, filename string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write upload form: %w", err)
	}
	if err := mw.WriteField("model", w.cfg.Model); err != nil {
		return "", fmt.Errorf("write upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.BaseURL, &body)
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if w.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.cfg.APIKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    "transcription failed",
		}
	}

	var parsed transcriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}
	return parsed.Text, nil
}
