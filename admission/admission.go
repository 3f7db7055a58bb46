package admission

import (
	"math"
	"sync"
	"time"
)

// Tier identifies one admission ceiling.
type Tier string

const (
	// TierPerClient bounds burst rate from a single client identity.
	TierPerClient Tier = "per_client"

	// TierGlobal bounds aggregate throughput across all clients.
	TierGlobal Tier = "global"

	// TierDaily bounds total daily spend against the downstream quota.
	TierDaily Tier = "daily"
)

// String returns the wire form of the tier.
func (t Tier) String() string { return string(t) }

// Config configures the three tiers and the idle-client janitor.
type Config struct {
	// PerClientLimit is the ceiling per client identity per window.
	// Default: 20
	PerClientLimit int

	// PerClientWindow is the per-client window length.
	// Default: 1 minute
	PerClientWindow time.Duration

	// GlobalLimit is the ceiling across all clients per window.
	// Default: 200
	GlobalLimit int

	// GlobalWindow is the global window length.
	// Default: 1 minute
	GlobalWindow time.Duration

	// DailyLimit is the ceiling for the long window.
	// Default: 5000
	DailyLimit int

	// DailyWindow is the long window length.
	// Default: 24 hours
	DailyWindow time.Duration

	// IdleClientAge is how long an unseen client's window state is kept.
	// Default: 10 minutes
	IdleClientAge time.Duration

	// CleanupInterval gates the idle-client prune: checks trigger a
	// prune only when this much time has passed since the previous one.
	// Default: 1 minute
	CleanupInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.PerClientLimit <= 0 {
		c.PerClientLimit = 20
	}
	if c.PerClientWindow <= 0 {
		c.PerClientWindow = time.Minute
	}
	if c.GlobalLimit <= 0 {
		c.GlobalLimit = 200
	}
	if c.GlobalWindow <= 0 {
		c.GlobalWindow = time.Minute
	}
	if c.DailyLimit <= 0 {
		c.DailyLimit = 5000
	}
	if c.DailyWindow <= 0 {
		c.DailyWindow = 24 * time.Hour
	}
	if c.IdleClientAge <= 0 {
		c.IdleClientAge = 10 * time.Minute
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = time.Minute
	}
	return c
}

// Decision is the outcome of one admission check.
//
// When denied, Tier names the highest-priority denying ceiling (daily
// over global over per-client) and RetryAfter is the time until the
// nearest denying tier resets. Limit,
// Remaining, and ResetAt describe the denying tier when denied, the
// per-client tier when allowed; they feed the rate-limit response
// headers.
type Decision struct {
	Allowed    bool
	Tier       Tier
	RetryAfter time.Duration
	Limit      int
	Remaining  int
	ResetAt    time.Time
}

// RetryAfterSeconds returns the retry hint rounded up to whole seconds,
// at least 1 for a denied decision.
func (d Decision) RetryAfterSeconds() int {
	if d.Allowed {
		return 0
	}
	s := int(math.Ceil(d.RetryAfter.Seconds()))
	if s < 1 {
		s = 1
	}
	return s
}

// Stats is a point-in-time snapshot of controller state.
type Stats struct {
	// Clients is the number of tracked client identities.
	Clients int

	// GlobalCount and DailyCount are the current window counters.
	GlobalCount int
	DailyCount  int

	// DailyLimit and DailyResetAt describe the long window, the tier
	// operators watch.
	DailyLimit   int
	DailyResetAt time.Time
}

type window struct {
	count    int
	resetAt  time.Time
	lastSeen time.Time
}

// roll resets the counter when the window has elapsed. A window with a
// zero resetAt has never started; the first check anchors it.
func (w *window) roll(now time.Time, length time.Duration) {
	if w.resetAt.IsZero() || !now.Before(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(length)
	}
}

// Controller is the multi-tier admission gate.
type Controller struct {
	cfg Config

	mu        sync.Mutex
	clients   map[string]*window
	global    window
	daily     window
	lastPrune time.Time

	now func() time.Time
}

// New creates a controller. Zero config fields fall back to defaults.
func New(cfg Config) *Controller {
	return &Controller{
		cfg:     cfg.withDefaults(),
		clients: make(map[string]*window),
		now:     time.Now,
	}
}

// Config returns the effective configuration after defaulting.
func (c *Controller) Config() Config { return c.cfg }

// Check admits or denies one request for the given client identity.
// Every tier's counter advances on every check, admitted or not, so a
// denied burst still counts against the broader ceilings it reached.
func (c *Controller) Check(clientID string) Decision {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.maybePruneLocked(now)

	cw := c.clients[clientID]
	if cw == nil {
		cw = &window{}
		c.clients[clientID] = cw
	}
	cw.lastSeen = now

	cw.roll(now, c.cfg.PerClientWindow)
	c.global.roll(now, c.cfg.GlobalWindow)
	c.daily.roll(now, c.cfg.DailyWindow)

	cw.count++
	c.global.count++
	c.daily.count++

	type denial struct {
		tier    Tier
		resetAt time.Time
		limit   int
		count   int
	}
	var denied []denial
	if c.daily.count > c.cfg.DailyLimit {
		denied = append(denied, denial{TierDaily, c.daily.resetAt, c.cfg.DailyLimit, c.daily.count})
	}
	if c.global.count > c.cfg.GlobalLimit {
		denied = append(denied, denial{TierGlobal, c.global.resetAt, c.cfg.GlobalLimit, c.global.count})
	}
	if cw.count > c.cfg.PerClientLimit {
		denied = append(denied, denial{TierPerClient, cw.resetAt, c.cfg.PerClientLimit, cw.count})
	}

	if len(denied) == 0 {
		return Decision{
			Allowed:   true,
			Limit:     c.cfg.PerClientLimit,
			Remaining: c.cfg.PerClientLimit - cw.count,
			ResetAt:   cw.resetAt,
		}
	}

	// denied is ordered by reporting priority: daily, then global, then
	// per-client. The reason comes from the head; the retry hint from
	// whichever denying tier resets soonest.
	reason := denied[0]
	nearest := denied[0].resetAt
	for _, d := range denied[1:] {
		if d.resetAt.Before(nearest) {
			nearest = d.resetAt
		}
	}

	return Decision{
		Allowed:    false,
		Tier:       reason.tier,
		RetryAfter: nearest.Sub(now),
		Limit:      reason.limit,
		Remaining:  0,
		ResetAt:    reason.resetAt,
	}
}

// Stats returns a snapshot of controller counters.
func (c *Controller) Stats() Stats {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.global.roll(now, c.cfg.GlobalWindow)
	c.daily.roll(now, c.cfg.DailyWindow)

	return Stats{
		Clients:      len(c.clients),
		GlobalCount:  c.global.count,
		DailyCount:   c.daily.count,
		DailyLimit:   c.cfg.DailyLimit,
		DailyResetAt: c.daily.resetAt,
	}
}

// maybePruneLocked drops window state for clients not seen within
// IdleClientAge, at most once per CleanupInterval. A window that has not
// reset yet is never pruned, however idle: forgetting it would hand a
// denied client a fresh counter early.
func (c *Controller) maybePruneLocked(now time.Time) {
	if now.Sub(c.lastPrune) < c.cfg.CleanupInterval {
		return
	}
	c.lastPrune = now

	for id, w := range c.clients {
		if now.Sub(w.lastSeen) > c.cfg.IdleClientAge && !now.Before(w.resetAt) {
			delete(c.clients, id)
		}
	}
}
