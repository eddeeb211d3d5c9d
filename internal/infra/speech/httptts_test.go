package speech_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infraspeech "smart-news/internal/infra/speech"
)

func TestHTTPTTSEngine_Synthesize(t *testing.T) {
	var gotBody struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3fake-mp3-bytes"))
	}))
	defer server.Close()

	engine := infraspeech.NewHTTPTTSEngine(infraspeech.HTTPTTSConfig{
		Engine:  "cloud-tts",
		BaseURL: server.URL,
		APIKey:  "secret-key",
	}, &http.Client{Timeout: 5 * time.Second})

	audio, err := engine.Synthesize(context.Background(), "Xin chào", "vi")
	if err != nil {
		t.Fatalf("Synthesize err=%v", err)
	}

	if gotBody.Text != "Xin chào" || gotBody.Language != "vi" {
		t.Errorf("request body = %+v", gotBody)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if audio.Engine != "cloud-tts" {
		t.Errorf("Engine = %q", audio.Engine)
	}
	if audio.MIMEType != "audio/mpeg" {
		t.Errorf("MIMEType = %q", audio.MIMEType)
	}
	if string(audio.Data) != "ID3fake-mp3-bytes" {
		t.Errorf("Data = %q", audio.Data)
	}
}

func TestHTTPTTSEngine_NonRetryableStatus(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	engine := infraspeech.NewHTTPTTSEngine(infraspeech.HTTPTTSConfig{
		Engine:  "cloud-tts",
		BaseURL: server.URL,
	}, server.Client())

	if _, err := engine.Synthesize(context.Background(), "hello", "en"); err == nil {
		t.Fatal("Synthesize must fail on 401")
	}
	// 401はリトライ対象外。1回で打ち切られること
	if calls != 1 {
		t.Errorf("server called %d times, want 1", calls)
	}
}

func TestHTTPTTSEngine_RetriesServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Write([]byte("RIFFok"))
	}))
	defer server.Close()

	engine := infraspeech.NewHTTPTTSEngine(infraspeech.HTTPTTSConfig{
		Engine:  "cloud-tts",
		BaseURL: server.URL,
	}, server.Client())

	audio, err := engine.Synthesize(context.Background(), "hello", "en")
	if err != nil {
		t.Fatalf("Synthesize err=%v", err)
	}
	if calls != 2 {
		t.Errorf("server called %d times, want 2", calls)
	}
	if string(audio.Data) != "RIFFok" {
		t.Errorf("Data = %q", audio.Data)
	}
}

func TestHTTPTTSEngine_EmptyAudioIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	engine := infraspeech.NewHTTPTTSEngine(infraspeech.HTTPTTSConfig{
		Engine:  "cloud-tts",
		BaseURL: server.URL,
	}, server.Client())

	if _, err := engine.Synthesize(context.Background(), "hello", "en"); err == nil {
		t.Fatal("empty body must be an error")
	}
}
