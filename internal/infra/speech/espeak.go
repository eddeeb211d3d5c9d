// Package speech provides the concrete synthesis and transcription engines
// behind the speech use case: a local espeak-ng subprocess, a remote HTTP
// TTS service, and a Whisper-compatible transcription client.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"smart-news/internal/resilience/circuitbreaker"
	speechUC "smart-news/internal/usecase/speech"
)

// espeakVoices maps supported language tags to espeak-ng voice names.
var espeakVoices = map[string]string{
	"vi": "vi",
	"en": "en-us",
	"zh": "cmn",
}

// EspeakEngine synthesizes speech with a local espeak-ng subprocess. It is
// the last resort of the chain: low quality, but no network dependency.
type EspeakEngine struct {
	binary         string
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewEspeakEngine creates an espeak-ng backed engine. An empty binary path
// uses "espeak-ng" from PATH.
func NewEspeakEngine(binary string) *EspeakEngine {
	if binary == "" {
		binary = "espeak-ng"
	}
	return &EspeakEngine{
		binary:         binary,
		circuitBreaker: circuitbreaker.New(circuitbreaker.SpeechEngineConfig("espeak")),
	}
}

// Name identifies the engine in logs and metrics.
func (e *EspeakEngine) Name() string { return "espeak" }

// Synthesize runs espeak-ng and captures the WAV output from stdout.
func (e *EspeakEngine) Synthesize(ctx context.Context, text, language string) (*speechUC.Audio, error) {
	voice, ok := espeakVoices[language]
	if !ok {
		voice = espeakVoices["en"]
	}

	result, err := e.circuitBreaker.Execute(func() (interface{}, error) {
		return e.run(ctx, text, voice)
	})
	if err != nil {
		return nil, err
	}

	return &speechUC.Audio{
		Data:     result.([]byte),
		MIMEType: "audio/wav",
		Engine:   e.Name(),
	}, nil
}

func (e *EspeakEngine) run(ctx context.Context, text, voice string) ([]byte, error) {
	// テキストは引数ではなくstdin経由で渡す（シェル引数長の制限を回避）
	cmd := exec.CommandContext(ctx, e.binary, "--stdout", "-v", voice, "--stdin")
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("espeak-ng: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("espeak-ng produced no audio")
	}
	return stdout.Bytes(), nil
}
