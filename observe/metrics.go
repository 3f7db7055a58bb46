package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/saurabh-xd/kana-dojo/apierr"
)

// Cache event names recorded by RecordCacheEvent.
const (
	CacheHit   = "hit"
	CacheStale = "stale"
	CacheMiss  = "miss"
)

// Metrics records service-level measurements. A no-op implementation
// backs disabled configurations, so call sites never branch.
type Metrics interface {
	// RecordRequest records one completed operation with its outcome.
	RecordRequest(ctx context.Context, operation string, duration time.Duration, err error)

	// RecordCacheEvent records a cache lookup outcome (hit, stale, miss).
	RecordCacheEvent(ctx context.Context, operation, event string)

	// RecordCoalesced records one request passing through the
	// single-flight group. shared marks requests that attached to an
	// existing in-flight call instead of starting their own.
	RecordCoalesced(ctx context.Context, operation string, shared bool)

	// RecordDenial records an admission denial for the given tier.
	RecordDenial(ctx context.Context, tier string)

	// RecordHTTP records one served HTTP request.
	RecordHTTP(ctx context.Context, method, route string, status int, duration time.Duration)
}

type metricsImpl struct {
	requests     metric.Int64Counter
	errors       metric.Int64Counter
	duration     metric.Float64Histogram
	cacheEvents  metric.Int64Counter
	coalesced    metric.Int64Counter
	denials      metric.Int64Counter
	httpDuration metric.Float64Histogram
}

var _ Metrics = (*metricsImpl)(nil)

func newMetrics(meter metric.Meter) (Metrics, error) {
	m := &metricsImpl{}
	var err error

	m.requests, err = meter.Int64Counter("kanadojo.requests",
		metric.WithDescription("Completed operations"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}

	m.errors, err = meter.Int64Counter("kanadojo.request.errors",
		metric.WithDescription("Operations that ended in an error"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating errors counter: %w", err)
	}

	m.duration, err = meter.Float64Histogram("kanadojo.request.duration_ms",
		metric.WithDescription("Operation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	m.cacheEvents, err = meter.Int64Counter("kanadojo.cache.events",
		metric.WithDescription("Cache lookup outcomes"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cache events counter: %w", err)
	}

	m.coalesced, err = meter.Int64Counter("kanadojo.coalesce.executions",
		metric.WithDescription("Requests passing through the single-flight group"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating coalesce counter: %w", err)
	}

	m.denials, err = meter.Int64Counter("kanadojo.admission.denials",
		metric.WithDescription("Admission denials by tier"),
		metric.WithUnit("{denial}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating denials counter: %w", err)
	}

	m.httpDuration, err = meter.Float64Histogram("kanadojo.http.duration_ms",
		metric.WithDescription("HTTP request latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http duration histogram: %w", err)
	}

	return m, nil
}

func (m *metricsImpl) RecordRequest(ctx context.Context, operation string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		m.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("code", string(apierr.FromError(err).Code)),
		))
	}
}

func (m *metricsImpl) RecordCacheEvent(ctx context.Context, operation, event string) {
	m.cacheEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("event", event),
	))
}

func (m *metricsImpl) RecordCoalesced(ctx context.Context, operation string, shared bool) {
	m.coalesced.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("shared", shared),
	))
}

func (m *metricsImpl) RecordDenial(ctx context.Context, tier string) {
	m.denials.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tier", tier),
	))
}

func (m *metricsImpl) RecordHTTP(ctx context.Context, method, route string, status int, duration time.Duration) {
	m.httpDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}
