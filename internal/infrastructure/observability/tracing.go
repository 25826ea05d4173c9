package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "decksnap/slides-api"
)

// GetTracer returns the tracer for the slides-api service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// GenerationAttributes returns common attributes for generation spans.
func GenerationAttributes(presentationID, theme string, slideCount int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("generation.presentation_id", presentationID),
		attribute.String("generation.theme", theme),
		attribute.Int("generation.slide_count", slideCount),
	}
}

// SlideAttributes returns common attributes for slide spans.
func SlideAttributes(presentationID, slideType string, order int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("slide.presentation_id", presentationID),
		attribute.String("slide.type", slideType),
		attribute.Int("slide.order", order),
	}
}

// StartGenerationSpan starts a new span for a generation run.
func StartGenerationSpan(ctx context.Context, presentationID, theme string, slideCount int) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "generation.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(GenerationAttributes(presentationID, theme, slideCount)...),
	)
	return ctx, span
}

// StartCompletionSpan starts a new span for one chat completion round trip.
func StartCompletionSpan(ctx context.Context, model string, iteration int) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "llm.completion",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.model", model),
			attribute.Int("llm.iteration", iteration),
		),
	)
	return ctx, span
}

// StartSlideSpan starts a new span for one slide execution.
func StartSlideSpan(ctx context.Context, presentationID, slideType string, order int) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "slide.add",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(SlideAttributes(presentationID, slideType, order)...),
	)
	return ctx, span
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error, severity string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.severity", severity))
}

// AddStatusTransition adds a status transition event to a span.
func AddStatusTransition(span trace.Span, fromStatus, toStatus string) {
	span.AddEvent("status.transition",
		trace.WithAttributes(
			attribute.String("status.from", fromStatus),
			attribute.String("status.to", toStatus),
		),
	)
}

// AddToolEvent adds a tool invocation event to a span.
func AddToolEvent(span trace.Span, tool string, ok bool) {
	span.AddEvent("tool.call",
		trace.WithAttributes(
			attribute.String("tool.name", tool),
			attribute.Bool("tool.ok", ok),
		),
	)
}
