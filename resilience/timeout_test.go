package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTimeoutWithinBudget(t *testing.T) {
	to := NewTimeout(TimeoutConfig{Timeout: time.Second})
	if err := to.Execute(context.Background(), succeeding); err != nil {
		t.Errorf("Execute: %v", err)
	}
}

func TestTimeoutExpires(t *testing.T) {
	to := NewTimeout(TimeoutConfig{Timeout: 5 * time.Millisecond})

	err := to.Execute(context.Background(), func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want %v", err, ErrTimeout)
	}
}

func TestTimeoutAbandonsBlockedOperation(t *testing.T) {
	to := NewTimeout(TimeoutConfig{Timeout: 5 * time.Millisecond})

	// The operation ignores its context entirely.
	start := time.Now()
	err := to.Execute(context.Background(), func(context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want %v", err, ErrTimeout)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Execute blocked for %v, want prompt return", elapsed)
	}
}

func TestTimeoutPropagatesOperationError(t *testing.T) {
	to := NewTimeout(TimeoutConfig{Timeout: time.Second})
	if err := to.Execute(context.Background(), failing); !errors.Is(err, errBackend) {
		t.Errorf("err = %v, want %v", err, errBackend)
	}
}

func TestTimeoutParentCancellation(t *testing.T) {
	to := NewTimeout(TimeoutConfig{Timeout: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := to.Execute(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want %v", err, context.Canceled)
	}
}

func TestExecuteWithTimeout(t *testing.T) {
	err := ExecuteWithTimeout(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want %v", err, ErrTimeout)
	}
}

func TestTimeoutDefaults(t *testing.T) {
	if got := NewTimeout(TimeoutConfig{}).Config().Timeout; got != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", got)
	}
}
