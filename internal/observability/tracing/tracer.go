package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("smart-news")

// GetTracer returns the shared tracer for opening spans anywhere in the
// application.
func GetTracer() trace.Tracer {
	return tracer
}
