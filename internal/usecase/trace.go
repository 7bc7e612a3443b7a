package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("football-stats/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan opens a child span only under an existing trace, so
// scheduler and CLI runs without a parent stay untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// setCountsAttributes records an orchestrator outcome on span.
func setCountsAttributes(span trace.Span, counts Counts) {
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.Int("football_stats.success", counts.Success),
		attribute.Int("football_stats.errors", counts.Errors),
	)
}
