// Package observability groups the logging, metrics and tracing plumbing.
//
// Subpackages:
//   - logging: slog construction and request-ID propagation
//   - metrics: Prometheus collectors for searches, crawls and speech calls
//   - tracing: OpenTelemetry middleware and tracer access
package observability
