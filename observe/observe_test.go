package observe

import (
	"context"
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid minimal",
			cfg:  Config{ServiceName: "kana-dojo"},
		},
		{
			name: "valid full",
			cfg: Config{
				ServiceName: "kana-dojo",
				Version:     "1.2.0",
				Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 0.5},
				Metrics:     MetricsConfig{Enabled: true, Exporter: "prometheus"},
				Logging:     LoggingConfig{Enabled: true, Level: "debug"},
			},
		},
		{
			name:    "missing service name",
			cfg:     Config{},
			wantErr: ErrMissingServiceName,
		},
		{
			name: "bad tracing exporter",
			cfg: Config{
				ServiceName: "kana-dojo",
				Tracing:     TracingConfig{Enabled: true, Exporter: "zipkin"},
			},
			wantErr: ErrInvalidTracingExporter,
		},
		{
			name: "sample pct above one",
			cfg: Config{
				ServiceName: "kana-dojo",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.5},
			},
			wantErr: ErrInvalidSamplePct,
		},
		{
			name: "negative sample pct",
			cfg: Config{
				ServiceName: "kana-dojo",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: -0.1},
			},
			wantErr: ErrInvalidSamplePct,
		},
		{
			name: "bad metrics exporter",
			cfg: Config{
				ServiceName: "kana-dojo",
				Metrics:     MetricsConfig{Enabled: true, Exporter: "statsd"},
			},
			wantErr: ErrInvalidMetricsExporter,
		},
		{
			name: "bad log level",
			cfg: Config{
				ServiceName: "kana-dojo",
				Logging:     LoggingConfig{Enabled: true, Level: "verbose"},
			},
			wantErr: ErrInvalidLogLevel,
		},
		{
			name: "disabled subsystems skip exporter checks",
			cfg: Config{
				ServiceName: "kana-dojo",
				Tracing:     TracingConfig{Enabled: false, Exporter: "zipkin"},
				Metrics:     MetricsConfig{Enabled: false, Exporter: "statsd"},
				Logging:     LoggingConfig{Enabled: false, Level: "verbose"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewObserverAllDisabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "kana-dojo"})
	if err != nil {
		t.Fatalf("NewObserver: %v", err)
	}

	if obs.Tracer() == nil {
		t.Error("Tracer() is nil")
	}
	if obs.Meter() == nil {
		t.Error("Meter() is nil")
	}
	if obs.Logger() == nil {
		t.Error("Logger() is nil")
	}
	if obs.Metrics() == nil {
		t.Error("Metrics() is nil")
	}

	// No-op components must still be callable.
	ctx, span := obs.Tracer().Start(context.Background(), "test")
	span.End()
	obs.Logger().Info(ctx, "disabled logger drops this")
	obs.Metrics().RecordDenial(ctx, "global")

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNewObserverEnabled(t *testing.T) {
	cfg := Config{
		ServiceName: "kana-dojo",
		Version:     "test",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	}
	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver: %v", err)
	}

	ctx, span := obs.Tracer().Start(context.Background(), "op")
	obs.Metrics().RecordCacheEvent(ctx, "translate", CacheHit)
	span.End()

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
	// Shutdown again must not fail.
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown: %v", err)
	}
}

func TestNewObserverRejectsInvalidConfig(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Fatalf("NewObserver error = %v, want %v", err, ErrMissingServiceName)
	}
}

func TestNewNoop(t *testing.T) {
	obs := NewNoop()
	ctx := context.Background()

	obs.Logger().Error(ctx, "dropped")
	obs.Metrics().RecordRequest(ctx, "translate", 0, nil)
	_, span := obs.Tracer().Start(ctx, "noop")
	span.End()

	if err := obs.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
