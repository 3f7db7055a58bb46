// Package coalesce merges concurrent calls for the same key into one
// underlying execution.
//
// At most one call per key is in flight at any instant. Joiners share the
// leader's outcome, success or failure, exactly once; the pending marker
// is removed before delivery, so a caller arriving after completion
// always starts a fresh call. Coalescing never populates any cache by
// itself.
package coalesce
