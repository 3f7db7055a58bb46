package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer starts and finishes spans around service operations.
type Tracer interface {
	// StartSpan starts a span with the given name and attributes.
	StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span)

	// EndSpan finishes the span, recording err when non-nil.
	EndSpan(span trace.Span, err error)
}

type tracer struct {
	tr trace.Tracer
}

var _ Tracer = (*tracer)(nil)

// NewTracer wraps an OpenTelemetry tracer in the service Tracer.
func NewTracer(tr trace.Tracer) Tracer {
	return &tracer{tr: tr}
}

func (t *tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tr.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
}

func (t *tracer) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
