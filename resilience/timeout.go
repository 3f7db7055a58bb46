package resilience

import (
	"context"
	"time"
)

// TimeoutConfig configures the timeout wrapper.
type TimeoutConfig struct {
	// Timeout is the time budget for one operation.
	// Default: 30s
	Timeout time.Duration
}

func (c TimeoutConfig) withDefaults() TimeoutConfig {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

// Timeout bounds how long an operation may run. The operation runs in
// its own goroutine, so even work that ignores its context, such as
// dictionary tokenization, cannot stall the caller past the budget.
type Timeout struct {
	cfg TimeoutConfig
}

// NewTimeout creates a timeout wrapper.
func NewTimeout(cfg TimeoutConfig) *Timeout {
	return &Timeout{cfg: cfg.withDefaults()}
}

// Execute runs op with a deadline. On expiry the caller gets ErrTimeout
// while op keeps running in the background until it notices its context.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return ErrTimeout
		}
		return ctx.Err()
	}
}

// Config returns the effective configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.cfg
}

// ExecuteWithTimeout runs a single operation under a one-off budget.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	return NewTimeout(TimeoutConfig{Timeout: timeout}).Execute(ctx, op)
}
