// Package tracing wires OpenTelemetry into the HTTP stack.
//
// Middleware opens a server span per request and echoes the trace ID in
// X-Trace-Id. Code deeper in the call path gets child spans from the shared
// tracer:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "news.search")
//	defer span.End()
//
// Exporter setup is left to the deployment; without one, spans are no-ops.
package tracing
