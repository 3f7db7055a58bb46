// Package resilience guards calls to expensive backends.
//
// The translation provider and the morphological analyzer sit behind
// this package: the circuit breaker stops hammering an upstream that is
// already failing, the bulkhead caps concurrent dictionary work, the
// timeout bounds any single call, and retry backs off between attempts,
// deferring to a server-supplied delay when one is known.
//
// Patterns compose through an Executor:
//
//	exec := resilience.NewExecutor(
//	    resilience.WithBreaker(resilience.NewBreaker(resilience.BreakerConfig{
//	        MaxFailures:  5,
//	        ResetTimeout: 30 * time.Second,
//	    })),
//	    resilience.WithTimeout(10*time.Second),
//	)
//
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return callProvider(ctx)
//	})
//
// Order is fixed: bulkhead, then circuit breaker, then retry, then
// timeout, so each retry attempt gets its own time budget and a call
// the breaker rejects holds its bulkhead slot only for the rejection.
package resilience
