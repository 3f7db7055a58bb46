package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return NewTracer(provider.Tracer("test")), recorder
}

func TestTracerRecordsSpan(t *testing.T) {
	tr, recorder := newTestTracer(t)

	ctx, span := tr.StartSpan(context.Background(), "translate",
		attribute.String("operation", "translate"),
	)
	if ctx == context.Background() {
		t.Error("StartSpan did not derive a new context")
	}
	tr.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	got := spans[0]
	if got.Name() != "translate" {
		t.Errorf("span name = %q, want translate", got.Name())
	}
	if got.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", got.Status().Code)
	}
	foundOp := false
	for _, attr := range got.Attributes() {
		if attr.Key == "operation" && attr.Value.AsString() == "translate" {
			foundOp = true
		}
	}
	if !foundOp {
		t.Error("operation attribute missing")
	}
}

func TestTracerRecordsError(t *testing.T) {
	tr, recorder := newTestTracer(t)

	_, span := tr.StartSpan(context.Background(), "analyze")
	tr.EndSpan(span, errors.New("engine build failed"))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	got := spans[0]
	if got.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", got.Status().Code)
	}
	if got.Status().Description != "engine build failed" {
		t.Errorf("description = %q, want the error message", got.Status().Description)
	}
	if len(got.Events()) == 0 {
		t.Error("expected a recorded error event")
	}
}

func TestTracerNestsSpans(t *testing.T) {
	tr, recorder := newTestTracer(t)

	ctx, parent := tr.StartSpan(context.Background(), "request")
	_, child := tr.StartSpan(ctx, "cache lookup")
	tr.EndSpan(child, nil)
	tr.EndSpan(parent, nil)

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	// Ended() returns in completion order, so the child comes first.
	childSpan, parentSpan := spans[0], spans[1]
	if childSpan.Parent().SpanID() != parentSpan.SpanContext().SpanID() {
		t.Error("child span not parented to the request span")
	}
	if childSpan.SpanContext().TraceID() != parentSpan.SpanContext().TraceID() {
		t.Error("child and parent spans have different trace IDs")
	}
}
