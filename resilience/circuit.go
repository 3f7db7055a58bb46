package resilience

import (
	"context"
	"sync"
	"time"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed means calls flow through normally.
	StateClosed State = iota
	// StateOpen means calls fail fast without reaching the backend.
	StateOpen
	// StateHalfOpen means a limited number of probe calls may pass.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a circuit breaker.
type BreakerConfig struct {
	// MaxFailures is the consecutive failure count that opens the circuit.
	// Default: 5
	MaxFailures int

	// ResetTimeout is how long the circuit stays open before probing.
	// Default: 30s
	ResetTimeout time.Duration

	// HalfOpenMaxProbes caps concurrent probe calls while half-open.
	// Default: 1
	HalfOpenMaxProbes int

	// OnStateChange is called after every state transition.
	OnStateChange func(from, to State)

	// IsFailure decides whether an error counts against the circuit.
	// Rejections such as invalid input should not trip a breaker that
	// guards backend health. Default: every non-nil error counts.
	IsFailure func(err error) bool
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.MaxFailures <= 0 {
		c.MaxFailures = 5
	}
	if c.ResetTimeout <= 0 {
		c.ResetTimeout = 30 * time.Second
	}
	if c.HalfOpenMaxProbes <= 0 {
		c.HalfOpenMaxProbes = 1
	}
	if c.IsFailure == nil {
		c.IsFailure = func(err error) bool { return err != nil }
	}
	return c
}

// Breaker fails fast once a backend has failed repeatedly, then lets
// probe calls through after ResetTimeout to detect recovery.
type Breaker struct {
	cfg BreakerConfig

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
	probes      int

	now func() time.Time
}

// NewBreaker creates a circuit breaker in the closed state.
func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{cfg: cfg.withDefaults(), state: StateClosed, now: time.Now}
}

// Execute runs op through the breaker. While the circuit is open it
// returns ErrCircuitOpen without invoking op.
func (b *Breaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.before(); err != nil {
		return err
	}
	err := op(ctx)
	b.after(err)
	return err
}

// State reports the current state, accounting for reset timeouts.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

// Reset forces the breaker closed and clears its failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	from := b.state
	b.state = StateClosed
	b.failures = 0
	b.probes = 0
	if from != StateClosed {
		b.notify(from, StateClosed)
	}
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.stateLocked() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.probes >= b.cfg.HalfOpenMaxProbes {
			return ErrCircuitOpen
		}
		b.probes++
	}
	return nil
}

func (b *Breaker) after(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	failed := b.cfg.IsFailure(err)
	from := b.state

	switch b.state {
	case StateClosed:
		if failed {
			b.failures++
			b.lastFailure = b.now()
			if b.failures >= b.cfg.MaxFailures {
				b.state = StateOpen
			}
		} else {
			b.failures = 0
		}
	case StateHalfOpen:
		if failed {
			// Probe failed, restart the open interval.
			b.lastFailure = b.now()
			b.state = StateOpen
		} else {
			b.state = StateClosed
			b.failures = 0
			b.probes = 0
		}
	}

	if from != b.state {
		b.notify(from, b.state)
	}
}

func (b *Breaker) stateLocked() State {
	if b.state == StateOpen && b.now().Sub(b.lastFailure) >= b.cfg.ResetTimeout {
		b.state = StateHalfOpen
		b.probes = 0
		b.notify(StateOpen, StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) notify(from, to State) {
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}

// BreakerStats is a snapshot of breaker state.
type BreakerStats struct {
	State       State
	Failures    int
	LastFailure time.Time
}

// Stats returns a snapshot of the breaker.
func (b *Breaker) Stats() BreakerStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BreakerStats{
		State:       b.stateLocked(),
		Failures:    b.failures,
		LastFailure: b.lastFailure,
	}
}
