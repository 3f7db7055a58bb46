package observe

import (
	"context"
	"testing"
	"time"
)

// The disabled and no-op paths must behave like the real ones from the
// caller's side: every method callable, nothing panics, With chains.

func TestMetricsContract_NoopRecordsEverything(t *testing.T) {
	obs := NewNoop()
	ctx := context.Background()
	m := obs.Metrics()

	m.RecordRequest(ctx, "translate", 10*time.Millisecond, nil)
	m.RecordRequest(ctx, "translate", 10*time.Millisecond, context.Canceled)
	m.RecordCacheEvent(ctx, "analyze", CacheMiss)
	m.RecordCoalesced(ctx, "translate", true)
	m.RecordDenial(ctx, "per_client")
	m.RecordHTTP(ctx, "POST", "/api/analyze", 500, time.Millisecond)
}

func TestTracerContract_NoopSpans(t *testing.T) {
	obs := NewNoop()
	tr := NewTracer(obs.Tracer())

	ctx, span := tr.StartSpan(context.Background(), "noop")
	if ctx == nil {
		t.Fatal("StartSpan returned nil context")
	}
	tr.EndSpan(span, context.DeadlineExceeded)
}

func TestLoggerContract_NoopWithChains(t *testing.T) {
	var log Logger = &noopLogger{}
	for i := 0; i < 3; i++ {
		log = log.With(F("depth", i))
		if log == nil {
			t.Fatal("With returned nil logger")
		}
	}
	log.Info(context.Background(), "still usable")
}
