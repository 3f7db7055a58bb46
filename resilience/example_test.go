package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saurabh-xd/kana-dojo/resilience"
)

func ExampleNewBreaker() {
	breaker := resilience.NewBreaker(resilience.BreakerConfig{MaxFailures: 2})
	ctx := context.Background()
	backendDown := errors.New("connection refused")

	for i := 0; i < 2; i++ {
		breaker.Execute(ctx, func(context.Context) error { return backendDown })
	}
	fmt.Println("state:", breaker.State())

	err := breaker.Execute(ctx, func(context.Context) error { return nil })
	fmt.Println("fails fast:", errors.Is(err, resilience.ErrCircuitOpen))
	// Output:
	// state: open
	// fails fast: true
}

func ExampleNewRetry() {
	retry := resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		NoJitter:     true,
	})

	attempt := 0
	err := retry.Execute(context.Background(), func(context.Context) error {
		attempt++
		if attempt < 3 {
			return errors.New("try again")
		}
		return nil
	})
	fmt.Println("attempts:", attempt, "err:", err)
	// Output:
	// attempts: 3 err: <nil>
}

func ExampleNewExecutor() {
	exec := resilience.NewExecutor(
		resilience.WithBulkhead(resilience.NewBulkhead(resilience.BulkheadConfig{MaxConcurrent: 4})),
		resilience.WithBreaker(resilience.NewBreaker(resilience.BreakerConfig{MaxFailures: 5})),
		resilience.WithTimeout(10*time.Second),
	)

	err := exec.Execute(context.Background(), func(ctx context.Context) error {
		// Call the translation provider here.
		return nil
	})
	fmt.Println("err:", err)
	// Output:
	// err: <nil>
}
