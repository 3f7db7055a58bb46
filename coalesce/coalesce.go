package coalesce

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Group deduplicates concurrent calls by key.
//
// Contract:
// - At most one execution of fn per key is in flight at a time.
// - Every caller waiting on a key receives the same outcome; a failure
//   is delivered once per caller and never retried automatically.
// - The in-flight marker is removed before outcomes are delivered, so
//   callers arriving after completion start a new execution.
// - A caller whose context ends stops waiting, but the execution keeps
//   running and its outcome remains available to the other waiters.
//
// The zero value is ready to use.
type Group struct {
	sf singleflight.Group
}

// Do executes fn for key, joining an in-flight execution when one
// exists. shared reports whether the outcome was delivered to more than
// one caller. When ctx ends before the execution completes, Do returns
// ctx's error; the execution itself is not canceled.
func (g *Group) Do(ctx context.Context, key string, fn func() (any, error)) (v any, shared bool, err error) {
	ch := g.sf.DoChan(key, func() (any, error) {
		return fn()
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	}
}
