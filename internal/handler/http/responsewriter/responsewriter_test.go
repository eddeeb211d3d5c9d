package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	wrapped := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
}

func TestWriteHeader_RecordsStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"ok", http.StatusOK},
		{"not found", http.StatusNotFound},
		{"bad gateway", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			wrapped := Wrap(rec)

			wrapped.WriteHeader(tt.status)

			assert.Equal(t, tt.status, wrapped.StatusCode())
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestWriteHeader_SecondCallDropped(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.WriteHeader(http.StatusAccepted)
	wrapped.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusAccepted, wrapped.StatusCode())
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestWrite_AccumulatesBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n1, err := wrapped.Write([]byte(`{"data":[`))
	require.NoError(t, err)
	n2, err := wrapped.Write([]byte(`]}`))
	require.NoError(t, err)

	assert.Equal(t, n1+n2, wrapped.BytesWritten())
	assert.Equal(t, `{"data":[]}`, rec.Body.String())
}

func TestWrite_ImpliesOK(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	_, err := wrapped.Write([]byte("chưa có tiêu đề"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	assert.Equal(t, http.ResponseWriter(rec), wrapped.Unwrap())
}

func TestWrap_InMiddlewareChain(t *testing.T) {
	var status, size int
	middleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := Wrap(w)
			next.ServeHTTP(wrapped, r)
			status = wrapped.StatusCode()
			size = wrapped.BytesWritten()
		})
	}

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"search record not found"}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/history/42", nil))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, len(`{"error":"search record not found"}`), size)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
