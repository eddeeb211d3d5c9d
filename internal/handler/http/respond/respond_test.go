package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		data     any
		wantBody string
	}{
		{
			name:     "map payload",
			code:     http.StatusOK,
			data:     map[string]string{"text": "xin chào"},
			wantBody: `{"text":"xin chào"}`,
		},
		{
			name:     "struct payload",
			code:     http.StatusOK,
			data:     struct{ Deleted int64 }{Deleted: 7},
			wantBody: `{"Deleted":7}`,
		},
		{
			name:     "nil writes no body",
			code:     http.StatusNoContent,
			data:     nil,
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			if w.Code != tt.code {
				t.Errorf("Code = %v, want %v", w.Code, tt.code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %v, want application/json", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tt.wantBody {
				t.Errorf("Body = %v, want %v", body, tt.wantBody)
			}
		})
	}
}

func TestJSON_EncodingFailureKeepsHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, make(chan int))

	if w.Code != http.StatusOK {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %v, want application/json", ct)
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusNotFound, errors.New("record not found"))

	if w.Code != http.StatusNotFound {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "record not found" {
		t.Errorf("error = %q, want %q", body["error"], "record not found")
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "validation error passes through",
			code:     http.StatusBadRequest,
			err:      errors.New("query is required"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "query is required",
		},
		{
			name:     "invalid input passes through",
			code:     http.StatusBadRequest,
			err:      errors.New("invalid query parameter: limit must be between 1 and 100"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid query parameter: limit must be between 1 and 100",
		},
		{
			name:     "not found passes through",
			code:     http.StatusNotFound,
			err:      errors.New("search record not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "search record not found",
		},
		{
			name:     "auth failure passes through",
			code:     http.StatusUnauthorized,
			err:      errors.New("unauthorized: token expired"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "unauthorized: token expired",
		},
		{
			name:     "rate limit passes through",
			code:     http.StatusTooManyRequests,
			err:      errors.New("rate limit exceeded"),
			wantCode: http.StatusTooManyRequests,
			wantMsg:  "rate limit exceeded",
		},
		{
			name:     "sql detail is masked",
			code:     http.StatusInternalServerError,
			err:      errors.New("pq: relation search_history does not exist"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
		{
			name:     "safe keyword never rescues a 5xx",
			code:     http.StatusInternalServerError,
			err:      errors.New("invalid connection state"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
		{
			name:     "upstream fetch error is masked",
			code:     http.StatusBadGateway,
			err:      errors.New("Get \"https://vnexpress.net/rss\": connection refused"),
			wantCode: http.StatusBadGateway,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			if w.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", w.Code, tt.wantCode)
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestSafeError_NilWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusBadRequest, nil)

	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}
