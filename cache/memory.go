package cache

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is the in-memory Store implementation.
//
// Writes enforce the size bound immediately; expired entries are removed
// by a time-gated sweep piggybacked on writes. There is no background
// goroutine, so an idle store does no work.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*storeEntry
	policy  Policy

	seq       uint64
	lastSweep time.Time
	evicted   uint64
	swept     uint64
}

type storeEntry struct {
	value     any
	createdAt time.Time
	seq       uint64
}

// NewMemoryStore creates a store with the given policy. Zero policy
// fields fall back to the ServerPolicy defaults.
func NewMemoryStore(policy Policy) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*storeEntry),
		policy:  policy.withDefaults(),
	}
}

// Policy returns the effective policy after defaulting.
func (s *MemoryStore) Policy() Policy {
	return s.policy
}

// Get retrieves an entry. Stale entries are returned as hits; the caller
// checks CreatedAt against its TTL.
func (s *MemoryStore) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	return Entry{Value: e.value, CreatedAt: e.createdAt}, true
}

// Put inserts or overwrites unconditionally, then evicts oldest-first if
// the size bound is exceeded and sweeps expired entries when the cleanup
// interval has elapsed.
func (s *MemoryStore) Put(key string, value any) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.entries[key] = &storeEntry{value: value, createdAt: now, seq: s.seq}
	s.evictLocked()
	s.maybeSweepLocked(now)
}

// Remove deletes an entry. Idempotent.
func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear empties the store.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]*storeEntry)
	s.mu.Unlock()
}

// Len returns the current entry count.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns a snapshot of store counters.
func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Entries:    len(s.entries),
		MaxEntries: s.policy.MaxEntries,
		Evicted:    s.evicted,
		Swept:      s.swept,
		LastSweep:  s.lastSweep,
	}
}

// evictLocked removes entries oldest-first until the count is at or
// below half of MaxEntries. Evicting in batches keeps the sort off the
// common write path.
func (s *MemoryStore) evictLocked() {
	if len(s.entries) <= s.policy.MaxEntries {
		return
	}
	target := s.policy.MaxEntries / 2

	type victim struct {
		key       string
		createdAt time.Time
		seq       uint64
	}
	victims := make([]victim, 0, len(s.entries))
	for k, e := range s.entries {
		victims = append(victims, victim{key: k, createdAt: e.createdAt, seq: e.seq})
	}
	sort.Slice(victims, func(i, j int) bool {
		if victims[i].createdAt.Equal(victims[j].createdAt) {
			return victims[i].seq < victims[j].seq
		}
		return victims[i].createdAt.Before(victims[j].createdAt)
	})

	for _, v := range victims {
		if len(s.entries) <= target {
			break
		}
		delete(s.entries, v.key)
		s.evicted++
	}
}

// maybeSweepLocked removes entries older than the TTL, at most once per
// CleanupInterval. Between sweeps stale entries stay readable (soft TTL).
func (s *MemoryStore) maybeSweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.policy.CleanupInterval {
		return
	}
	s.lastSweep = now

	for k, e := range s.entries {
		if now.Sub(e.createdAt) > s.policy.TTL {
			delete(s.entries, k)
			s.swept++
		}
	}
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
