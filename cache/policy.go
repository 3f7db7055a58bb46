package cache

import "time"

// Policy configures one store instance. The server-side and client-side
// stores run independent policies.
type Policy struct {
	// TTL is the soft freshness bound consumers apply to entries.
	// Default: 1 hour.
	TTL time.Duration

	// MaxEntries is the size bound enforced on writes. When exceeded,
	// entries are evicted oldest-first until the count is at or below
	// half this value. Minimum: 2. Default: 300.
	MaxEntries int

	// CleanupInterval gates the expired-entry sweep: writes trigger a
	// sweep only when this much time has passed since the previous one.
	// Default: 5 minutes.
	CleanupInterval time.Duration
}

// ServerPolicy returns the authoritative-side profile: longer TTL,
// tighter size bound.
func ServerPolicy() Policy {
	return Policy{
		TTL:             1 * time.Hour,
		MaxEntries:      300,
		CleanupInterval: 5 * time.Minute,
	}
}

// ClientPolicy returns the SDK-side profile: shorter TTL, slightly
// larger size bound.
func ClientPolicy() Policy {
	return Policy{
		TTL:             30 * time.Minute,
		MaxEntries:      500,
		CleanupInterval: 2 * time.Minute,
	}
}

// withDefaults fills zero fields from ServerPolicy and enforces the
// MaxEntries floor that keeps evict-to-half meaningful.
func (p Policy) withDefaults() Policy {
	def := ServerPolicy()
	if p.TTL <= 0 {
		p.TTL = def.TTL
	}
	if p.MaxEntries <= 0 {
		p.MaxEntries = def.MaxEntries
	}
	if p.MaxEntries < 2 {
		p.MaxEntries = 2
	}
	if p.CleanupInterval <= 0 {
		p.CleanupInterval = def.CleanupInterval
	}
	return p
}
