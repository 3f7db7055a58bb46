package observe

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Middleware instruments HTTP handlers with a span, a latency
// measurement, and an access log line per request.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates HTTP middleware from individual components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// MiddlewareFromObserver creates HTTP middleware backed by obs.
func MiddlewareFromObserver(obs Observer) *Middleware {
	return NewMiddleware(NewTracer(obs.Tracer()), obs.Metrics(), obs.Logger())
}

// Handler wraps next with tracing, metrics, and access logging.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := r.URL.Path

		ctx, span := m.tracer.StartSpan(r.Context(), r.Method+" "+route,
			attribute.String("http.request.method", r.Method),
			attribute.String("url.path", route),
		)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		duration := time.Since(start)
		var spanErr error
		if rec.status >= 500 {
			spanErr = fmt.Errorf("http %d", rec.status)
		}
		span.SetAttributes(attribute.Int("http.response.status_code", rec.status))
		m.tracer.EndSpan(span, spanErr)
		m.metrics.RecordHTTP(ctx, r.Method, route, rec.status, duration)

		fields := []Field{
			F("method", r.Method),
			F("path", route),
			F("status", rec.status),
			F("duration_ms", duration.Milliseconds()),
		}
		switch {
		case rec.status >= 500:
			m.logger.Error(ctx, "request failed", fields...)
		case rec.status >= 400:
			m.logger.Warn(ctx, "request rejected", fields...)
		default:
			m.logger.Info(ctx, "request served", fields...)
		}
	})
}

// statusRecorder captures the status code written by a handler.
// Handlers that never call WriteHeader implicitly send 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
