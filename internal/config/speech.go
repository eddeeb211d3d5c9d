package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// SpeechConfig wires the speech engines. Engines lists the synthesis
// strategies in fallback order; engines whose settings are missing are
// skipped at wiring time with a warning.
type SpeechConfig struct {
	// Engines is the synthesis fallback order, a comma-separated list in
	// the environment. Known names: "cloud-tts", "espeak".
	Engines []string

	// TTSBaseURL and TTSAPIKey configure the cloud-tts engine.
	TTSBaseURL string
	TTSAPIKey  string

	// EspeakBinary is the espeak-ng binary path, empty for PATH lookup.
	EspeakBinary string

	// WhisperBaseURL and WhisperAPIKey configure transcription. An empty
	// URL disables the transcription endpoint.
	WhisperBaseURL string
	WhisperAPIKey  string
	WhisperModel   string

	// SynthesisPerSecond rate-limits synthesis calls. Zero disables the
	// limit.
	SynthesisPerSecond float64
}

// DefaultSpeechConfig prefers the cloud engine with espeak as last resort.
func DefaultSpeechConfig() SpeechConfig {
	return SpeechConfig{
		Engines:            []string{"cloud-tts", "espeak"},
		WhisperModel:       "whisper-1",
		SynthesisPerSecond: 5,
	}
}

// LoadSpeechConfigFromEnv loads the speech settings from the environment.
//
// Environment variables:
//   - SPEECH_ENGINES: comma-separated engine order (default: "cloud-tts,espeak")
//   - TTS_BASE_URL, TTS_API_KEY: cloud synthesis endpoint
//   - ESPEAK_BINARY: espeak-ng path override
//   - WHISPER_BASE_URL, WHISPER_API_KEY, WHISPER_MODEL: transcription endpoint
//   - SPEECH_RATE_LIMIT: synthesis calls per second, 0 to disable
func LoadSpeechConfigFromEnv() (SpeechConfig, error) {
	cfg := DefaultSpeechConfig()

	if val := os.Getenv("SPEECH_ENGINES"); val != "" {
		engines := []string{}
		for _, name := range strings.Split(val, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if name != "cloud-tts" && name != "espeak" {
				return cfg, fmt.Errorf("unknown speech engine %q in SPEECH_ENGINES", name)
			}
			engines = append(engines, name)
		}
		if len(engines) == 0 {
			return cfg, fmt.Errorf("SPEECH_ENGINES is set but names no engines")
		}
		cfg.Engines = engines
	}

	cfg.TTSBaseURL = os.Getenv("TTS_BASE_URL")
	cfg.TTSAPIKey = os.Getenv("TTS_API_KEY")
	cfg.EspeakBinary = os.Getenv("ESPEAK_BINARY")
	cfg.WhisperBaseURL = os.Getenv("WHISPER_BASE_URL")
	cfg.WhisperAPIKey = os.Getenv("WHISPER_API_KEY")
	if val := os.Getenv("WHISPER_MODEL"); val != "" {
		cfg.WhisperModel = val
	}

	if val := os.Getenv("SPEECH_RATE_LIMIT"); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil || parsed < 0 {
			return cfg, fmt.Errorf("invalid SPEECH_RATE_LIMIT: %q", val)
		}
		cfg.SynthesisPerSecond = parsed
	}

	return cfg, nil
}
