// Package cache provides the bounded in-memory result store shared by
// the translate and analyze paths.
//
// The store applies a soft TTL: reads return stale entries together with
// their creation time and consumers decide freshness themselves. The size
// bound is enforced by oldest-first batch eviction down to half capacity;
// expired entries are swept opportunistically during writes, never by a
// timer. Key derivation is SHA-256 over canonicalized operation
// parameters.
package cache
