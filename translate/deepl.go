package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/saurabh-xd/kana-dojo/apierr"
	"github.com/saurabh-xd/kana-dojo/resilience"
)

// DeepLConfig configures the DeepL-protocol client.
type DeepLConfig struct {
	// BaseURL is the provider endpoint root.
	// Default: https://api-free.deepl.com
	BaseURL string

	// APIKey authenticates against the provider. An empty key leaves
	// the client constructible but every call fails with
	// AUTH_CONFIGURATION, so an analysis-only deployment still starts.
	APIKey string

	// Timeout bounds one provider call.
	// Default: 10s
	Timeout time.Duration

	// RequestsPerSecond paces calls to stay under provider limits.
	// Default: 10
	RequestsPerSecond float64

	// Burst is the pacing burst allowance.
	// Default: 5
	Burst int

	// MaxFailures opens the circuit after this many consecutive
	// provider failures.
	// Default: 5
	MaxFailures int

	// ResetTimeout is how long the circuit stays open.
	// Default: 30s
	ResetTimeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

func (c DeepLConfig) withDefaults() DeepLConfig {
	if c.BaseURL == "" {
		c.BaseURL = "https://api-free.deepl.com"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 10
	}
	if c.Burst <= 0 {
		c.Burst = 5
	}
	if c.MaxFailures <= 0 {
		c.MaxFailures = 5
	}
	if c.ResetTimeout <= 0 {
		c.ResetTimeout = 30 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	return c
}

// DeepL talks the DeepL v2 JSON protocol.
type DeepL struct {
	cfg     DeepLConfig
	pace    *rate.Limiter
	breaker *resilience.Breaker
	guard   *resilience.Executor
}

var _ Provider = (*DeepL)(nil)

// NewDeepL creates a provider client.
func NewDeepL(cfg DeepLConfig) *DeepL {
	cfg = cfg.withDefaults()
	breaker := resilience.NewBreaker(resilience.BreakerConfig{
		MaxFailures:  cfg.MaxFailures,
		ResetTimeout: cfg.ResetTimeout,
		// Only availability failures count. Credential and input
		// rejections would fail every probe and wedge the circuit.
		IsFailure: func(err error) bool {
			return apierr.IsCode(err, apierr.CodeUpstreamUnavailable) ||
				errors.Is(err, resilience.ErrTimeout)
		},
	})
	return &DeepL{
		cfg:     cfg,
		pace:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breaker: breaker,
		guard: resilience.NewExecutor(
			resilience.WithBreaker(breaker),
			resilience.WithTimeout(cfg.Timeout),
		),
	}
}

// CircuitStats snapshots the guard breaker for health reporting.
func (d *DeepL) CircuitStats() resilience.BreakerStats {
	return d.breaker.Stats()
}

// Configured reports whether the client has an API key to present.
func (d *DeepL) Configured() bool {
	return d.cfg.APIKey != ""
}

type deeplRequest struct {
	Text       []string `json:"text"`
	SourceLang string   `json:"source_lang"`
	TargetLang string   `json:"target_lang"`
}

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate sends one translation request to the provider.
func (d *DeepL) Translate(ctx context.Context, req Request) (Result, error) {
	if d.cfg.APIKey == "" {
		return Result{}, apierr.New(apierr.CodeAuthConfiguration,
			"translation provider credentials are not configured")
	}

	if err := d.pace.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, apierr.Wrap(apierr.CodeUpstreamUnavailable, "provider pacing", err)
	}

	var out Result
	err := d.guard.Execute(ctx, func(ctx context.Context) error {
		res, err := d.call(ctx, req)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, resilience.ErrCircuitOpen):
		return Result{}, apierr.Wrap(apierr.CodeUpstreamUnavailable,
			"translation provider is unavailable", err)
	case errors.Is(err, resilience.ErrTimeout):
		return Result{}, apierr.Wrap(apierr.CodeUpstreamUnavailable,
			"translation provider timed out", err)
	default:
		return Result{}, err
	}
}

func (d *DeepL) call(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(deeplRequest{
		Text:       []string{req.Text},
		SourceLang: strings.ToUpper(string(req.Source)),
		TargetLang: strings.ToUpper(string(req.Target)),
	})
	if err != nil {
		return Result{}, apierr.Wrap(apierr.CodeInternal, "encoding provider request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.cfg.BaseURL+"/v2/translate", bytes.NewReader(body))
	if err != nil {
		return Result{}, apierr.Wrap(apierr.CodeInternal, "building provider request", err)
	}
	httpReq.Header.Set("Authorization", "DeepL-Auth-Key "+d.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return Result{}, apierr.Wrap(apierr.CodeUpstreamUnavailable, "calling translation provider", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{}, apierr.New(apierr.CodeAuthConfiguration,
			"translation provider rejected the configured credentials")
	case http.StatusTooManyRequests:
		return Result{}, apierr.New(apierr.CodeUpstreamUnavailable,
			"translation provider is rate limiting requests")
	case 456: // DeepL: character quota exhausted
		return Result{}, apierr.New(apierr.CodeUpstreamUnavailable,
			"translation provider quota is exhausted")
	default:
		return Result{}, apierr.Newf(apierr.CodeUpstreamUnavailable,
			"translation provider returned status %d", resp.StatusCode)
	}

	var decoded deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, apierr.Wrap(apierr.CodeUpstreamUnavailable,
			"decoding provider response", err)
	}
	if len(decoded.Translations) == 0 {
		return Result{}, apierr.New(apierr.CodeUpstreamUnavailable,
			"provider response contained no translation")
	}
	return Result{Text: decoded.Translations[0].Text}, nil
}

// String describes the client for logs.
func (d *DeepL) String() string {
	return fmt.Sprintf("deepl(%s)", d.cfg.BaseURL)
}
