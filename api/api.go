package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"github.com/saurabh-xd/kana-dojo/auth"
	"github.com/saurabh-xd/kana-dojo/observe"
	"github.com/saurabh-xd/kana-dojo/service"
)

// ErrNoService indicates New was called without the orchestrator.
var ErrNoService = errors.New("api: no service")

// Config bounds the HTTP surface.
type Config struct {
	// CacheMaxAge is advertised in Cache-Control on successful
	// responses.
	// Default: 5 minutes.
	CacheMaxAge time.Duration

	// MaxBodyBytes caps request body size.
	// Default: 1 MiB.
	MaxBodyBytes int64

	// AllowedOrigins enables browser CORS for the listed origins.
	// Empty leaves CORS off.
	AllowedOrigins []string
}

func (c Config) withDefaults() Config {
	if c.CacheMaxAge <= 0 {
		c.CacheMaxAge = 5 * time.Minute
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	return c
}

// Deps are the HTTP surface's collaborators. Service is required.
type Deps struct {
	Service *service.Service

	// Resolver establishes client identity. Nil resolves every request
	// to its address identity.
	Resolver *auth.Resolver

	// Logger defaults to a no-op logger.
	Logger observe.Logger

	// Observe instruments requests. Nil disables instrumentation.
	Observe *observe.Middleware
}

// API serves the /api endpoints.
type API struct {
	cfg      Config
	svc      *service.Service
	resolver *auth.Resolver
	log      observe.Logger
	mw       *observe.Middleware
}

// New creates the HTTP surface. Zero config fields fall back to
// defaults.
func New(cfg Config, deps Deps) (*API, error) {
	if deps.Service == nil {
		return nil, ErrNoService
	}
	if deps.Resolver == nil {
		deps.Resolver = auth.NewResolver(nil, nil)
	}
	noop := observe.NewNoop()
	if deps.Logger == nil {
		deps.Logger = noop.Logger()
	}
	if deps.Observe == nil {
		deps.Observe = observe.MiddlewareFromObserver(noop)
	}
	return &API{
		cfg:      cfg.withDefaults(),
		svc:      deps.Service,
		resolver: deps.Resolver,
		log:      deps.Logger,
		mw:       deps.Observe,
	}, nil
}

// Handler returns the complete /api surface with the middleware chain
// applied: request ID outermost, then tracing and access logs, CORS,
// and identity resolution nearest the handlers.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/translate", a.handleTranslate)
	mux.HandleFunc("POST /api/analyze", a.handleAnalyze)

	var h http.Handler = mux
	h = a.identity(h)
	if len(a.cfg.AllowedOrigins) > 0 {
		h = cors.Handler(cors.Options{
			AllowedOrigins: a.cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key", HeaderRequestID},
			ExposedHeaders: []string{
				HeaderRequestID,
				"Retry-After",
				"X-RateLimit-Limit",
				"X-RateLimit-Remaining",
				"X-RateLimit-Reset",
			},
			MaxAge: 300,
		})(h)
	}
	h = a.mw.Handler(h)
	h = RequestID(h)
	return h
}

// identity resolves the client identity into the request context. A
// presented credential that fails verification downgrades to the
// address identity; the request proceeds because identity only
// partitions admission, it grants nothing.
func (a *API) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := a.resolver.Resolve(r)
		if err != nil {
			a.log.Warn(r.Context(), "credential rejected, using address identity",
				observe.F("error", err.Error()),
				observe.F("client", ident.Key()),
			)
		}
		ctx := auth.WithIdentity(r.Context(), ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
