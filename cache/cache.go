package cache

import "time"

// Entry is a stored result together with its creation time.
//
// The store never judges freshness: consumers compare CreatedAt against
// their own TTL when deciding to reuse or refresh. Values are shared, not
// copied; treat them as read-only.
type Entry struct {
	Value     any
	CreatedAt time.Time
}

// Stats is a point-in-time snapshot of a store's state.
type Stats struct {
	// Entries is the current number of stored entries.
	Entries int

	// MaxEntries is the configured size bound.
	MaxEntries int

	// Evicted counts entries removed by size-bound eviction.
	Evicted uint64

	// Swept counts expired entries removed by housekeeping.
	Swept uint64

	// LastSweep is when housekeeping last ran. Zero until the first sweep.
	LastSweep time.Time
}

// Store is the interface for the bounded result cache.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Totality: no operation returns an error or blocks on I/O.
// - Staleness: Get returns entries past their TTL; freshness is the
//   caller's decision based on Entry.CreatedAt.
type Store interface {
	// Get retrieves an entry. Returns (Entry{}, false) on miss.
	Get(key string) (Entry, bool)

	// Put inserts or overwrites unconditionally, then enforces the size
	// bound.
	Put(key string, value any)

	// Remove deletes an entry. Idempotent - no effect on miss.
	Remove(key string)

	// Clear empties the store.
	Clear()

	// Len returns the current entry count.
	Len() int

	// Stats returns a snapshot of store counters.
	Stats() Stats
}
