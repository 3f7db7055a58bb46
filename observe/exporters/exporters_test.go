package exporters

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func clearOTLPEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_JAEGER_ENDPOINT", "")
}

func TestNewTracingExporterNone(t *testing.T) {
	for _, name := range []string{"none", ""} {
		exp, err := NewTracingExporter(context.Background(), name)
		if err != nil {
			t.Fatalf("NewTracingExporter(%q): %v", name, err)
		}
		if exp == nil {
			t.Fatalf("NewTracingExporter(%q) returned nil exporter", name)
		}
		_ = exp.Shutdown(context.Background())
	}
}

func TestNewTracingExporterStdout(t *testing.T) {
	exp, err := NewTracingExporter(context.Background(), "stdout")
	if err != nil {
		t.Fatalf("NewTracingExporter(stdout): %v", err)
	}
	_ = exp.Shutdown(context.Background())
}

func TestNewTracingExporterOTLPNeedsEndpoint(t *testing.T) {
	clearOTLPEnv(t)

	_, err := NewTracingExporter(context.Background(), "otlp")
	if !errors.Is(err, ErrNoEndpoint) {
		t.Fatalf("err = %v, want %v", err, ErrNoEndpoint)
	}
	if !strings.Contains(err.Error(), "OTEL_EXPORTER_OTLP_ENDPOINT") {
		t.Errorf("error should name the variable to set, got %q", err)
	}
}

func TestNewTracingExporterJaegerNeedsEndpoint(t *testing.T) {
	clearOTLPEnv(t)

	_, err := NewTracingExporter(context.Background(), "jaeger")
	if !errors.Is(err, ErrNoEndpoint) {
		t.Fatalf("err = %v, want %v", err, ErrNoEndpoint)
	}
}

func TestNewTracingExporterUnknown(t *testing.T) {
	_, err := NewTracingExporter(context.Background(), "zipkin")
	if err == nil {
		t.Fatal("expected error for unknown exporter")
	}
	if !strings.Contains(err.Error(), "zipkin") {
		t.Errorf("error should name the exporter, got %q", err)
	}
}

func TestNewMetricsReaderNone(t *testing.T) {
	for _, name := range []string{"none", ""} {
		reader, err := NewMetricsReader(context.Background(), name)
		if err != nil {
			t.Fatalf("NewMetricsReader(%q): %v", name, err)
		}
		if reader == nil {
			t.Fatalf("NewMetricsReader(%q) returned nil reader", name)
		}
		_ = reader.Shutdown(context.Background())
	}
}

func TestNewMetricsReaderPrometheus(t *testing.T) {
	reader, err := NewMetricsReader(context.Background(), "prometheus")
	if err != nil {
		t.Fatalf("NewMetricsReader(prometheus): %v", err)
	}
	_ = reader.Shutdown(context.Background())
}

func TestNewMetricsReaderOTLPNeedsEndpoint(t *testing.T) {
	clearOTLPEnv(t)

	_, err := NewMetricsReader(context.Background(), "otlp")
	if !errors.Is(err, ErrNoEndpoint) {
		t.Fatalf("err = %v, want %v", err, ErrNoEndpoint)
	}
}

func TestNewMetricsReaderUnknown(t *testing.T) {
	_, err := NewMetricsReader(context.Background(), "graphite")
	if err == nil {
		t.Fatal("expected error for unknown metrics exporter")
	}
}
