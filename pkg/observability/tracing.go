package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the name of the tracer for pipeline operations.
	TracerName = "chatlens"
)

// Span attribute keys
const (
	AttrRunID     = "run_id"
	AttrStage     = "stage"
	AttrLinesRead = "lines_read"
	AttrMessages  = "messages"
	AttrSkipped   = "skipped"
	AttrErrorCode = "error_code"
)

// Tracer provides tracing for pipeline stages.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer from the global provider. Without an installed
// provider every span is a no-op.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(TracerName),
	}
}

// NewTracerWithProvider creates a tracer from a specific provider.
func NewTracerWithProvider(tp trace.TracerProvider) *Tracer {
	return &Tracer{tracer: tp.Tracer(TracerName)}
}

// StageSpanName returns the span name of a stage, e.g. "chatlens.stage.parse".
func StageSpanName(stage string) string {
	return fmt.Sprintf("chatlens.stage.%s", stage)
}

// StartStageSpan starts a span for a pipeline stage.
func (t *Tracer) StartStageSpan(ctx context.Context, runID, stage string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, StageSpanName(stage),
		trace.WithAttributes(
			attribute.String(AttrRunID, runID),
			attribute.String(AttrStage, stage),
		),
	)
}

// SpanHelper provides convenient methods for working with the current span.
type SpanHelper struct {
	span trace.Span
}

// NewSpanHelper creates a new span helper for the given span.
func NewSpanHelper(span trace.Span) *SpanHelper {
	return &SpanHelper{span: span}
}

// SetParseCounts sets the parse stage counters on the span.
func (h *SpanHelper) SetParseCounts(linesRead, messages, skipped int) {
	h.span.SetAttributes(
		attribute.Int(AttrLinesRead, linesRead),
		attribute.Int(AttrMessages, messages),
		attribute.Int(AttrSkipped, skipped),
	)
}

// SetError records an error on the span.
func (h *SpanHelper) SetError(err error, code string) {
	h.span.SetStatus(codes.Error, err.Error())
	h.span.SetAttributes(attribute.String(AttrErrorCode, code))
	h.span.RecordError(err)
}

// SetSuccess marks the span as successful.
func (h *SpanHelper) SetSuccess() {
	h.span.SetStatus(codes.Ok, "")
}

// GetTraceID returns the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}
