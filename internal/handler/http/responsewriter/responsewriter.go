// Package responsewriter wraps http.ResponseWriter so middleware can see the
// status code and body size after the handler ran.
package responsewriter

import (
	"net/http"
)

// ResponseWriter records the status and byte count of a response.
type ResponseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

// Wrap returns a recording wrapper around w. The status defaults to 200
// because net/http writes that when the handler never calls WriteHeader.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// WriteHeader records the first status code. Later calls are dropped, same
// as the superfluous-WriteHeader behavior of the underlying writer.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards to the underlying writer and accumulates the byte count.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode returns the status the handler wrote.
func (w *ResponseWriter) StatusCode() int {
	return w.status
}

// BytesWritten returns the total body bytes written so far.
func (w *ResponseWriter) BytesWritten() int {
	return w.bytes
}

// Unwrap exposes the wrapped writer so http.ResponseController keeps working.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
