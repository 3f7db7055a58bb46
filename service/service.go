package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/saurabh-xd/kana-dojo/admission"
	"github.com/saurabh-xd/kana-dojo/analyze"
	"github.com/saurabh-xd/kana-dojo/apierr"
	"github.com/saurabh-xd/kana-dojo/auth"
	"github.com/saurabh-xd/kana-dojo/cache"
	"github.com/saurabh-xd/kana-dojo/coalesce"
	"github.com/saurabh-xd/kana-dojo/observe"
	"github.com/saurabh-xd/kana-dojo/translate"
)

// Operation names used for cache keys, metrics, and spans.
const (
	opTranslate = "translate"
	opAnalyze   = "analyze"
)

// Config bounds the orchestrator's own behavior. The injected
// dependencies carry their own configuration.
type Config struct {
	// CacheTTL is the freshness bound applied to stored results. The
	// store keeps entries past this age; the orchestrator treats them
	// as misses and refreshes.
	// Default: 1 hour.
	CacheTTL time.Duration

	// UpstreamTimeout bounds one upstream call made by a coalesced
	// leader. The leader runs detached from its caller, so this is the
	// only thing that stops it.
	// Default: 15 seconds.
	UpstreamTimeout time.Duration

	// MaxTextRunes is the input size cap, counted in runes.
	// Default: 5000.
	MaxTextRunes int
}

func (c Config) withDefaults() Config {
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Hour
	}
	if c.UpstreamTimeout <= 0 {
		c.UpstreamTimeout = 15 * time.Second
	}
	if c.MaxTextRunes <= 0 {
		c.MaxTextRunes = 5000
	}
	return c
}

// Deps are the orchestrator's collaborators. Store, Admitter, Provider,
// and Analyzer are required; the rest default to no-op or standard
// implementations.
type Deps struct {
	Store    cache.Store
	Admitter *admission.Controller
	Provider translate.Provider
	Analyzer *analyze.Analyzer

	// Keyer defaults to cache.NewHashKeyer().
	Keyer cache.Keyer

	// Logger, Metrics, and Tracer default to no-op implementations.
	Logger  observe.Logger
	Metrics observe.Metrics
	Tracer  observe.Tracer
}

// Service is the orchestrator. One instance serves both operations;
// the coalescing group is per-instance, so two services never share
// in-flight calls.
type Service struct {
	cfg Config

	store    cache.Store
	keys     cache.Keyer
	admitter *admission.Controller
	provider translate.Provider
	analyzer *analyze.Analyzer

	flights coalesce.Group

	log     observe.Logger
	metrics observe.Metrics
	tracer  observe.Tracer

	now func() time.Time
}

// New creates the orchestrator. Zero config fields fall back to
// defaults; missing required dependencies are an error.
func New(cfg Config, deps Deps) (*Service, error) {
	if deps.Store == nil {
		return nil, ErrNoStore
	}
	if deps.Admitter == nil {
		return nil, ErrNoAdmitter
	}
	if deps.Provider == nil {
		return nil, ErrNoProvider
	}
	if deps.Analyzer == nil {
		return nil, ErrNoAnalyzer
	}

	if deps.Keyer == nil {
		deps.Keyer = cache.NewHashKeyer()
	}
	noop := observe.NewNoop()
	if deps.Logger == nil {
		deps.Logger = noop.Logger()
	}
	if deps.Metrics == nil {
		deps.Metrics = noop.Metrics()
	}
	if deps.Tracer == nil {
		deps.Tracer = observe.NewTracer(noop.Tracer())
	}

	return &Service{
		cfg:      cfg.withDefaults(),
		store:    deps.Store,
		keys:     deps.Keyer,
		admitter: deps.Admitter,
		provider: deps.Provider,
		analyzer: deps.Analyzer,
		log:      deps.Logger,
		metrics:  deps.Metrics,
		tracer:   deps.Tracer,
		now:      time.Now,
	}, nil
}

// Config returns the effective configuration after defaulting.
func (s *Service) Config() Config { return s.cfg }

// validateText applies the shared input rules: non-empty after
// trimming, rune count within the cap. Returns the trimmed text.
func (s *Service) validateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", apierr.New(apierr.CodeInvalidInput, "text is required")
	}
	if n := utf8.RuneCountInString(text); n > s.cfg.MaxTextRunes {
		return "", apierr.Newf(apierr.CodeInvalidInput,
			"text exceeds the %d character limit (got %d)", s.cfg.MaxTextRunes, n)
	}
	return trimmed, nil
}

// admit checks the request against the admission tiers. A denial comes
// back as a DenialError so the HTTP layer can emit headers.
func (s *Service) admit(ctx context.Context) error {
	ident, ok := auth.IdentityFromContext(ctx)
	if !ok {
		ident = auth.Anonymous()
	}

	d := s.admitter.Check(ident.Key())
	if d.Allowed {
		return nil
	}

	s.metrics.RecordDenial(ctx, d.Tier.String())
	s.log.Info(ctx, "admission denied",
		observe.F("tier", d.Tier.String()),
		observe.F("client", ident.Key()),
		observe.F("retry_after_s", d.RetryAfterSeconds()),
	)
	return &DenialError{
		Decision: d,
		err:      apierr.RateLimited(denialMessage(d.Tier), d.RetryAfterSeconds()),
	}
}

func denialMessage(tier admission.Tier) string {
	switch tier {
	case admission.TierDaily:
		return "daily request quota exhausted"
	case admission.TierGlobal:
		return "service is handling too many requests"
	default:
		return "too many requests from this client"
	}
}

// lookup returns a cached value still within the freshness bound.
// Stale entries count as misses; the refresh overwrites them.
func (s *Service) lookup(ctx context.Context, op, key string) (any, bool) {
	e, ok := s.store.Get(key)
	if !ok {
		s.metrics.RecordCacheEvent(ctx, op, observe.CacheMiss)
		return nil, false
	}
	if s.now().Sub(e.CreatedAt) >= s.cfg.CacheTTL {
		s.metrics.RecordCacheEvent(ctx, op, observe.CacheStale)
		return nil, false
	}
	s.metrics.RecordCacheEvent(ctx, op, observe.CacheHit)
	return e.Value, true
}

// detached returns a context for a coalesced leader: the caller's
// values (trace, identity) without its cancellation, bounded by the
// upstream timeout instead.
func (s *Service) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.cfg.UpstreamTimeout)
}
