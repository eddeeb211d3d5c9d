package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"smart-news/internal/handler/http/requestid"
	"smart-news/internal/handler/http/respond"
	"smart-news/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel/trace"
)

// Logging returns middleware that writes one structured log line per request,
// carrying the request ID and the OpenTelemetry trace ID so log lines and
// spans can be joined.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			span := trace.SpanFromContext(r.Context())
			duration := time.Since(start)

			logger.Info("request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that turns a handler panic into a 500 response
// and logs the stack instead of letting the process die.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					respond.SafeError(
						w,
						http.StatusInternalServerError,
						fmt.Errorf("internal error"),
					)

					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody caps request body size. Oversized reads fail inside the
// handler with http.MaxBytesError.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// visitLog holds the request timestamps of one client inside the sliding
// window.
type visitLog struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// RateLimiter limits requests per client IP with a sliding window.
type RateLimiter struct {
	visits    sync.Map // map[string]*visitLog
	limit     int
	window    time.Duration
	sweepMu   sync.Mutex
	lastSweep time.Time
}

// NewRateLimiter returns a limiter allowing limit requests per window per
// client IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Limit rejects requests over the per-IP budget with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		// インラインで掃除しておかないと訪問記録が増え続ける
		rl.maybeSweep()

		if !rl.allow(ip) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow records the request timestamp when the client is under its budget.
func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	val, _ := rl.visits.LoadOrStore(ip, &visitLog{
		timestamps: make([]time.Time, 0, rl.limit),
	})
	log := val.(*visitLog)

	log.mu.Lock()
	defer log.mu.Unlock()

	// 窓の外に出たタイムスタンプを落とす
	cutoff := now.Add(-rl.window)
	kept := log.timestamps[:0]
	for _, ts := range log.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	log.timestamps = kept

	if len(log.timestamps) >= rl.limit {
		return false
	}

	log.timestamps = append(log.timestamps, now)
	return true
}

// CleanupExpired drops clients not seen for two windows. The background
// cleanup goroutine calls this on its interval.
func (rl *RateLimiter) CleanupExpired() {
	rl.sweep(time.Now().Add(-rl.window * 2))
}

// maybeSweep runs an inline sweep at most every 10 minutes.
func (rl *RateLimiter) maybeSweep() {
	rl.sweepMu.Lock()
	defer rl.sweepMu.Unlock()

	if time.Since(rl.lastSweep) < 10*time.Minute {
		return
	}
	rl.lastSweep = time.Now()
	rl.sweep(time.Now().Add(-rl.window * 2))
}

// sweep deletes every visit log whose newest timestamp is older than cutoff.
func (rl *RateLimiter) sweep(cutoff time.Time) {
	rl.visits.Range(func(key, value interface{}) bool {
		log := value.(*visitLog)
		log.mu.Lock()
		stale := true
		for _, ts := range log.timestamps {
			if ts.After(cutoff) {
				stale = false
				break
			}
		}
		log.mu.Unlock()
		if stale {
			rl.visits.Delete(key)
		}
		return true
	})
}

// clientIP resolves the caller's address, trusting X-Forwarded-For and
// X-Real-IP before RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// プロキシ経由の場合、先頭がクライアントの IP
		if ip := firstForwardedIP(xff); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// firstForwardedIP parses the leading address of a comma-separated
// X-Forwarded-For value. Returns "" when it is not a valid IP.
func firstForwardedIP(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			if ip := net.ParseIP(s[:i]); ip != nil {
				return ip.String()
			}
			return ""
		}
	}
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return ""
}
