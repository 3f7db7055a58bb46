package observe

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// Field is a structured log attribute.
type Field struct {
	Key   string
	Value any
}

// F builds a Field. It keeps call sites short:
//
//	log.Info(ctx, "cache hit", observe.F("key", key))
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is a leveled, structured logger. Implementations attach the
// active trace and span IDs from ctx when a recording span is present.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Context: ctx is read for trace correlation only, never for
//     cancellation.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// With returns a Logger that includes fields on every record.
	With(fields ...Field) Logger
}

// Values of these keys are replaced before the record is written.
var redactedKeys = map[string]bool{
	"password":   true,
	"secret":     true,
	"token":      true,
	"api_key":    true,
	"apiKey":     true,
	"credential": true,
}

const redacted = "[REDACTED]"

type structuredLogger struct {
	sl *slog.Logger
}

var _ Logger = (*structuredLogger)(nil)

// NewLogger creates a JSON logger writing to stderr at the given level.
// Unknown levels fall back to info.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(os.Stderr, level)
}

// NewLoggerWithWriter creates a JSON logger writing to w at the given
// level. It exists so tests can capture output.
func NewLoggerWithWriter(w io.Writer, level string) Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLogLevel(level)})
	return &structuredLogger{sl: slog.New(h)}
}

// ParseLogLevel maps a level name to its slog level. Unknown names map
// to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *structuredLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelDebug, msg, fields)
}

func (l *structuredLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelInfo, msg, fields)
}

func (l *structuredLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelWarn, msg, fields)
}

func (l *structuredLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
}

func (l *structuredLogger) With(fields ...Field) Logger {
	return &structuredLogger{sl: l.sl.With(toArgs(nil, fields)...)}
}

func (l *structuredLogger) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	attrs := make([]slog.Attr, 0, len(fields)+2)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, redactValue(f)))
	}
	l.sl.LogAttrs(ctx, level, msg, attrs...)
}

func toArgs(dst []any, fields []Field) []any {
	for _, f := range fields {
		dst = append(dst, f.Key, redactValue(f))
	}
	return dst
}

func redactValue(f Field) any {
	if redactedKeys[f.Key] {
		return redacted
	}
	return f.Value
}

type noopLogger struct{}

var _ Logger = (*noopLogger)(nil)

func (*noopLogger) Debug(context.Context, string, ...Field) {}
func (*noopLogger) Info(context.Context, string, ...Field)  {}
func (*noopLogger) Warn(context.Context, string, ...Field)  {}
func (*noopLogger) Error(context.Context, string, ...Field) {}
func (n *noopLogger) With(...Field) Logger                  { return n }
