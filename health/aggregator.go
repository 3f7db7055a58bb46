package health

import (
	"context"
	"sync"
	"time"
)

// AggregatorConfig configures the check aggregator.
type AggregatorConfig struct {
	// Timeout bounds one round of checks. A checker still running when
	// it expires is reported unhealthy with ErrCheckTimeout.
	// Default: 5s.
	Timeout time.Duration
}

func (c AggregatorConfig) withDefaults() AggregatorConfig {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	return c
}

// Aggregator fans a probe out to every registered checker and folds
// the results into one status.
type Aggregator struct {
	cfg AggregatorConfig

	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string
}

// NewAggregator creates an empty aggregator.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	return &Aggregator{
		cfg:      cfg.withDefaults(),
		checkers: make(map[string]Checker),
	}
}

// Register adds a checker under name, replacing any previous checker
// with that name. Registration order is the report order.
func (a *Aggregator) Register(name string, c Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.checkers[name]; !exists {
		a.order = append(a.order, name)
	}
	a.checkers[name] = c
}

// Check probes a single component by name.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	c, ok := a.checkers[name]
	a.mu.RUnlock()
	if !ok {
		return Result{}, ErrUnknownComponent
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()
	return a.run(ctx, c), nil
}

// CheckAll probes every component in parallel under one time budget.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	checkers := make(map[string]Checker, len(a.checkers))
	for name, c := range a.checkers {
		checkers[name] = c
	}
	a.mu.RUnlock()

	results := make(map[string]Result, len(checkers))
	if len(checkers) == 0 {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	var wg sync.WaitGroup
	var resMu sync.Mutex
	for name, c := range checkers {
		wg.Add(1)
		go func(name string, c Checker) {
			defer wg.Done()
			r := a.run(ctx, c)
			resMu.Lock()
			results[name] = r
			resMu.Unlock()
		}(name, c)
	}
	wg.Wait()

	return results
}

// Names returns component names in registration order.
func (a *Aggregator) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Overall folds a result set into one status: unhealthy if any
// component is unhealthy, else degraded if any is degraded, else
// healthy. An empty set is healthy.
func Overall(results map[string]Result) Status {
	overall := StatusHealthy
	for _, r := range results {
		if r.Status > overall {
			overall = r.Status
		}
	}
	return overall
}

// run executes one check, stamping duration and timestamp. The check
// runs in its own goroutine so a checker that ignores its context
// cannot stall the probe past the budget.
func (a *Aggregator) run(ctx context.Context, c Checker) Result {
	start := time.Now()
	done := make(chan Result, 1)

	go func() {
		done <- c.Check(ctx)
	}()

	select {
	case r := <-done:
		r.Duration = time.Since(start)
		r.Timestamp = start
		return r
	case <-ctx.Done():
		return Result{
			Status:    StatusUnhealthy,
			Message:   "check timed out",
			Err:       ErrCheckTimeout,
			Duration:  time.Since(start),
			Timestamp: start,
		}
	}
}
