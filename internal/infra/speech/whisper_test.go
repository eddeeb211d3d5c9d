package speech_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	infraspeech "smart-news/internal/infra/speech"
)

func TestWhisperClient_Transcribe(t *testing.T) {
	var gotModel, gotFilename string
	var gotFile []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		buf := make([]byte, header.Size)
		file.Read(buf)
		gotFile = buf

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"giá vàng hôm nay"}`))
	}))
	defer server.Close()

	client := infraspeech.NewWhisperClient(infraspeech.WhisperConfig{
		BaseURL: server.URL,
		Model:   "whisper-1",
	}, server.Client())

	got, err := client.Transcribe(context.Background(), strings.NewReader("fake-wav-bytes"), "query.wav")
	if err != nil {
		t.Fatalf("Transcribe err=%v", err)
	}

	if got != "giá vàng hôm nay" {
		t.Errorf("transcript = %q", got)
	}
	if gotModel != "whisper-1" {
		t.Errorf("model = %q", gotModel)
	}
	if gotFilename != "query.wav" {
		t.Errorf("filename = %q", gotFilename)
	}
	if string(gotFile) != "fake-wav-bytes" {
		t.Errorf("uploaded bytes = %q", gotFile)
	}
}

func TestWhisperClient_EmptyAudio(t *testing.T) {
	client := infraspeech.NewWhisperClient(infraspeech.WhisperConfig{
		BaseURL: "http://127.0.0.1:1",
	}, http.DefaultClient)

	if _, err := client.Transcribe(context.Background(), strings.NewReader(""), "q.wav"); err == nil {
		t.Fatal("empty audio must be rejected before any request")
	}
}

func TestWhisperClient_ServerErrorRetriesThenFails(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := infraspeech.NewWhisperClient(infraspeech.WhisperConfig{
		BaseURL: server.URL,
	}, server.Client())

	if _, err := client.Transcribe(context.Background(), strings.NewReader("audio"), "q.wav"); err == nil {
		t.Fatal("Transcribe must fail on persistent 500")
	}
	if calls != 2 {
		t.Errorf("server called %d times, want 2 (one retry)", calls)
	}
}
