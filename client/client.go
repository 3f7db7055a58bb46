package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/saurabh-xd/kana-dojo/apierr"
	"github.com/saurabh-xd/kana-dojo/cache"
	"github.com/saurabh-xd/kana-dojo/coalesce"
	"github.com/saurabh-xd/kana-dojo/observe"
	"github.com/saurabh-xd/kana-dojo/resilience"
)

// Operation names reused as cache key prefixes. They match the server's
// so the two caches partition the key space the same way.
const (
	opTranslate = "translate"
	opAnalyze   = "analyze"
)

// errorBodyLimit caps how much of an error response is read when
// recovering the taxonomy payload.
const errorBodyLimit = 64 << 10

// Config configures the SDK client. BaseURL is required; everything
// else has working defaults.
type Config struct {
	// BaseURL is the service root, such as https://api.kanadojo.app.
	BaseURL string

	// APIKey, when set, is sent as X-API-Key on every request.
	APIKey string

	// Token, when set, is sent as a bearer token on every request.
	Token string

	// Timeout bounds one HTTP attempt.
	// Default: 15s.
	Timeout time.Duration

	// MaxAttempts is the per-call attempt budget, including the first.
	// Only retryable taxonomy errors consume extra attempts.
	// Default: 3.
	MaxAttempts int

	// RetryMaxDelay caps the wait between attempts, including waits
	// directed by a server Retry-After.
	// Default: 30s.
	RetryMaxDelay time.Duration

	// Cache is the local result cache policy. Zero fields fall back to
	// cache.ClientPolicy(), not the server profile.
	Cache cache.Policy

	// Logger receives retry diagnostics.
	// Default: no-op.
	Logger observe.Logger

	// HTTPClient supplies the underlying transport, mainly for tests.
	// Its transport is wrapped for credential injection; the client
	// passed in is not mutated.
	HTTPClient *http.Client
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = 30 * time.Second
	}
	def := cache.ClientPolicy()
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = def.TTL
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = def.MaxEntries
	}
	if c.Cache.CleanupInterval <= 0 {
		c.Cache.CleanupInterval = def.CleanupInterval
	}
	if c.Logger == nil {
		c.Logger = observe.NewNoop().Logger()
	}
	return c
}

// Client calls the service with the same caching and coalescing
// discipline the server applies, bound to the transport instead of the
// upstream providers. A Client is safe for concurrent use.
type Client struct {
	cfg   Config
	httpc *http.Client

	store   cache.Store
	keys    cache.Keyer
	flights coalesce.Group
	retry   *resilience.Retry
	log     observe.Logger

	now func() time.Time
}

// New creates a client for the service at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNoBaseURL
	}
	cfg = cfg.withDefaults()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	httpc := &http.Client{
		Transport:     newAuthTransport(base.Transport, cfg.APIKey, cfg.Token),
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       cfg.Timeout,
	}

	c := &Client{
		cfg:   cfg,
		httpc: httpc,
		store: cache.NewMemoryStore(cfg.Cache),
		keys:  cache.NewHashKeyer(),
		log:   cfg.Logger,
		now:   time.Now,
	}
	c.retry = resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts: cfg.MaxAttempts,
		MaxDelay:    cfg.RetryMaxDelay,
		RetryIf: func(err error) bool {
			return apierr.FromError(err).Retryable()
		},
		DelayHint: retryDelayHint,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			c.log.Warn(context.Background(), "retrying request",
				observe.F("attempt", attempt),
				observe.F("delay_ms", delay.Milliseconds()),
				observe.F("error", err.Error()),
			)
		},
	})
	return c, nil
}

// CacheStats reports the local cache counters.
func (c *Client) CacheStats() cache.Stats {
	return c.store.Stats()
}

// fresh reports whether a cached entry is within the local freshness
// bound. The store keeps stale entries; the refresh overwrites them.
func (c *Client) fresh(e cache.Entry) bool {
	return c.now().Sub(e.CreatedAt) < c.cfg.Cache.TTL
}

// detached strips the caller's cancellation from a coalesced leader's
// context so an abandoned wait cannot kill the request other callers
// share. Each attempt stays bounded by the HTTP client timeout.
func (c *Client) detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// post sends one JSON request through the retry handler and decodes a
// 200 into out. Any other outcome comes back as a taxonomy error.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return apierr.Wrap(apierr.CodeInternal, "encoding request", err)
	}

	return c.retry.Execute(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.cfg.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return apierr.Wrap(apierr.CodeInternal, "building request", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return apierr.Wrap(apierr.CodeNetworkOffline, "service unreachable", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return decodeError(resp)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apierr.Wrap(apierr.CodeInternal, "decoding response", err)
		}
		return nil
	})
}

// decodeError recovers the taxonomy error carried in an error body.
// Bodies written by intermediaries are not taxonomy JSON; those fall
// back to classification by status code.
func decodeError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err == nil {
		var e apierr.Error
		if json.Unmarshal(raw, &e) == nil && e.Code != "" {
			if e.Status == 0 {
				e.Status = resp.StatusCode
			}
			return &e
		}
	}
	return statusError(resp)
}

// statusError maps a non-taxonomy response onto the nearest taxonomy
// code. For 429 the Retry-After header still carries the delay.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		after, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return apierr.RateLimited("service is rate limiting requests", after)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apierr.New(apierr.CodeAuthConfiguration,
			"service rejected the configured credentials")
	case http.StatusBadRequest:
		return apierr.New(apierr.CodeInvalidInput, "service rejected the request")
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return apierr.Newf(apierr.CodeUpstreamUnavailable,
			"service returned status %d", resp.StatusCode)
	default:
		return apierr.Newf(apierr.CodeInternal,
			"service returned status %d", resp.StatusCode)
	}
}

// retryDelayHint surfaces a server Retry-After as the wait before the
// next attempt, replacing the computed backoff.
func retryDelayHint(err error) (time.Duration, bool) {
	var e *apierr.Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return time.Duration(e.RetryAfter) * time.Second, true
	}
	return 0, false
}
