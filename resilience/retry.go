package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Default: 3
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	// Default: 100ms
	InitialDelay time.Duration

	// MaxDelay caps the delay between attempts.
	// Default: 30s
	MaxDelay time.Duration

	// Multiplier grows the delay between attempts.
	// Default: 2.0
	Multiplier float64

	// NoJitter disables the random spread added to each delay.
	NoJitter bool

	// RetryIf decides whether an error is worth another attempt.
	// Default: every non-nil error is retried.
	RetryIf func(err error) bool

	// DelayHint extracts a server-directed delay from an error, such as
	// a Retry-After value. When it reports ok the hint replaces the
	// computed backoff for that attempt, still capped by MaxDelay.
	DelayHint func(err error) (time.Duration, bool)

	// OnRetry is called before each retry sleep.
	OnRetry func(attempt int, err error, delay time.Duration)
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = 100 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2.0
	}
	if c.RetryIf == nil {
		c.RetryIf = func(err error) bool { return err != nil }
	}
	return c
}

// Retry re-runs failed operations with exponential backoff.
type Retry struct {
	cfg RetryConfig
}

// NewRetry creates a retry handler.
func NewRetry(cfg RetryConfig) *Retry {
	return &Retry{cfg: cfg.withDefaults()}
}

// Execute runs op until it succeeds, an attempt fails with an error
// RetryIf declines, the attempt budget runs out, or ctx is done. The
// last attempt's error is returned unwrapped so callers can classify it.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.cfg.RetryIf(err) {
			return err
		}
		if attempt >= r.cfg.MaxAttempts {
			break
		}

		delay := r.delay(attempt, err)
		if r.cfg.OnRetry != nil {
			r.cfg.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

func (r *Retry) delay(attempt int, err error) time.Duration {
	if r.cfg.DelayHint != nil {
		if hint, ok := r.cfg.DelayHint(err); ok && hint > 0 {
			if hint > r.cfg.MaxDelay {
				return r.cfg.MaxDelay
			}
			return hint
		}
	}

	mult := math.Pow(r.cfg.Multiplier, float64(attempt-1))
	delay := time.Duration(float64(r.cfg.InitialDelay) * mult)
	if delay > r.cfg.MaxDelay {
		delay = r.cfg.MaxDelay
	}
	if !r.cfg.NoJitter && delay > 0 {
		// Up to 25% spread keeps coordinated clients from retrying in
		// lockstep.
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += time.Duration(rand.Int64N(int64(delay / 4)))
	}
	return delay
}

// Config returns the effective configuration.
func (r *Retry) Config() RetryConfig {
	return r.cfg
}
