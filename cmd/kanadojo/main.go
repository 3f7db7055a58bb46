package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/saurabh-xd/kana-dojo/admission"
	"github.com/saurabh-xd/kana-dojo/analyze"
	"github.com/saurabh-xd/kana-dojo/api"
	"github.com/saurabh-xd/kana-dojo/auth"
	"github.com/saurabh-xd/kana-dojo/cache"
	"github.com/saurabh-xd/kana-dojo/config"
	"github.com/saurabh-xd/kana-dojo/health"
	"github.com/saurabh-xd/kana-dojo/observe"
	"github.com/saurabh-xd/kana-dojo/service"
	"github.com/saurabh-xd/kana-dojo/translate"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (default: config.yaml in . or /etc/kanadojo)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(*configPath)

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "kanadojo",
		Version:     version,
		Logging: observe.LoggingConfig{
			Enabled: cfg.Observability.Logging.Enabled,
			Level:   cfg.Observability.Logging.Level,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  cfg.Observability.Metrics.Enabled,
			Exporter: cfg.Observability.Metrics.Exporter,
		},
		Tracing: observe.TracingConfig{
			Enabled:   cfg.Observability.Tracing.Enabled,
			Exporter:  cfg.Observability.Tracing.Exporter,
			SamplePct: cfg.Observability.Tracing.SamplePct / 100,
		},
	})
	if err != nil {
		log.Fatalf("setting up observability: %v", err)
	}
	logger := obs.Logger()

	store := cache.NewMemoryStore(cache.Policy{
		TTL:             cfg.Cache.TTL,
		MaxEntries:      cfg.Cache.MaxEntries,
		CleanupInterval: cfg.Cache.CleanupInterval,
	})

	admitter := admission.New(admission.Config{
		PerClientLimit:  cfg.Admission.PerClientLimit,
		PerClientWindow: cfg.Admission.PerClientWindow,
		GlobalLimit:     cfg.Admission.GlobalLimit,
		GlobalWindow:    cfg.Admission.GlobalWindow,
		DailyLimit:      cfg.Admission.DailyLimit,
		DailyWindow:     cfg.Admission.DailyWindow,
	})

	provider := translate.NewDeepL(translate.DeepLConfig{
		BaseURL:           cfg.Translate.BaseURL,
		APIKey:            cfg.Translate.APIKey,
		Timeout:           cfg.Translate.Timeout,
		RequestsPerSecond: cfg.Translate.RequestsPerSecond,
		Burst:             cfg.Translate.Burst,
		MaxFailures:       cfg.Translate.MaxFailures,
		ResetTimeout:      cfg.Translate.ResetTimeout,
	})
	if cfg.Translate.APIKey == "" {
		logger.Warn(ctx, "no translation API key configured, translate requests will fail")
	}

	analyzer := analyze.New(analyze.Config{
		MaxConcurrent: cfg.Analyze.MaxConcurrent,
		QueueWait:     cfg.Analyze.QueueWait,
		Timeout:       cfg.Analyze.Timeout,
	})
	if cfg.Analyze.WarmOnStart {
		go func() {
			warmCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			if err := analyzer.Warm(warmCtx); err != nil {
				logger.Warn(warmCtx, "analyzer warm-up failed",
					observe.F("error", err.Error()))
				return
			}
			logger.Info(warmCtx, "analyzer ready")
		}()
	}

	var verifier *auth.TokenVerifier
	if cfg.Auth.TokenSecret != "" {
		verifier, err = auth.NewTokenVerifier(auth.TokenConfig{
			Secret: []byte(cfg.Auth.TokenSecret),
			Issuer: cfg.Auth.TokenIssuer,
		})
		if err != nil {
			log.Fatalf("setting up token verification: %v", err)
		}
	}
	var keys *auth.KeySet
	if len(cfg.Auth.APIKeys) > 0 {
		keys = auth.NewKeySet(cfg.Auth.APIKeys)
	}
	resolver := auth.NewResolver(verifier, keys)

	svc, err := service.New(service.Config{
		CacheTTL:        cfg.Cache.TTL,
		UpstreamTimeout: cfg.Service.UpstreamTimeout,
		MaxTextRunes:    cfg.Service.MaxTextChars,
	}, service.Deps{
		Store:    store,
		Admitter: admitter,
		Provider: provider,
		Analyzer: analyzer,
		Logger:   logger,
		Metrics:  obs.Metrics(),
		Tracer:   observe.NewTracer(obs.Tracer()),
	})
	if err != nil {
		log.Fatalf("setting up service: %v", err)
	}

	surface, err := api.New(api.Config{
		CacheMaxAge:    cfg.Server.CacheMaxAge,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, api.Deps{
		Service:  svc,
		Resolver: resolver,
		Logger:   logger,
		Observe:  observe.MiddlewareFromObserver(obs),
	})
	if err != nil {
		log.Fatalf("setting up API: %v", err)
	}

	checks := health.NewAggregator(health.AggregatorConfig{})
	checks.Register("analyzer", health.AnalyzerChecker(analyzer))
	checks.Register("provider", health.ProviderChecker(provider))
	checks.Register("cache", health.CacheChecker(store))
	checks.Register("admission", health.AdmissionChecker(admitter))

	mux := http.NewServeMux()
	mux.Handle("/api/", surface.Handler())
	health.RegisterHandlers(mux, checks)
	if cfg.Observability.Metrics.Enabled && cfg.Observability.Metrics.Exporter == "prometheus" {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "server listening",
			observe.F("addr", cfg.Server.Addr),
			observe.F("version", version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info(context.Background(), "shutting down")
		drainCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(drainCtx)
	})

	err = g.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if flushErr := obs.Shutdown(flushCtx); flushErr != nil {
		logger.Error(flushCtx, "telemetry shutdown failed", observe.F("error", flushErr.Error()))
	}

	if err != nil {
		log.Fatalf("server failed: %v", err)
	}
	logger.Info(context.Background(), "server stopped")
}
