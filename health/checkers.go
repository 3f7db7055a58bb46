package health

import (
	"context"
	"fmt"
	"time"

	"github.com/saurabh-xd/kana-dojo/admission"
	"github.com/saurabh-xd/kana-dojo/analyze"
	"github.com/saurabh-xd/kana-dojo/cache"
	"github.com/saurabh-xd/kana-dojo/resilience"
)

// AnalyzerChecker reports the lazily built analyzer. A cold analyzer
// is degraded, not unhealthy: the first analysis request or a warmup
// pass builds it.
func AnalyzerChecker(a *analyze.Analyzer) Checker {
	return CheckerFunc(func(context.Context) Result {
		if a.Ready() {
			return Healthy("analyzer ready")
		}
		return Degraded("analyzer not built yet")
	})
}

// ProviderReporter exposes the translation client state the provider
// checker reads.
type ProviderReporter interface {
	// Configured reports whether a provider credential is present.
	Configured() bool

	// CircuitStats snapshots the guard breaker.
	CircuitStats() resilience.BreakerStats
}

// ProviderChecker reports the translation provider through its guard
// breaker. An open circuit is unhealthy; a missing credential or a
// probing half-open circuit is degraded.
func ProviderChecker(r ProviderReporter) Checker {
	return CheckerFunc(func(context.Context) Result {
		stats := r.CircuitStats()
		details := map[string]any{
			"configured": r.Configured(),
			"circuit":    stats.State.String(),
			"failures":   stats.Failures,
		}
		if !stats.LastFailure.IsZero() {
			details["last_failure"] = stats.LastFailure.UTC().Format(time.RFC3339)
		}

		switch {
		case stats.State == resilience.StateOpen:
			return Unhealthy("provider circuit open", resilience.ErrCircuitOpen).WithDetails(details)
		case !r.Configured():
			return Degraded("no provider credential configured").WithDetails(details)
		case stats.State == resilience.StateHalfOpen:
			return Degraded("provider circuit probing").WithDetails(details)
		default:
			return Healthy("provider available").WithDetails(details)
		}
	})
}

// CacheChecker reports cache occupancy. The in-memory store cannot
// fail; the counters feed the detailed report.
func CacheChecker(s cache.Store) Checker {
	return CheckerFunc(func(context.Context) Result {
		stats := s.Stats()
		msg := fmt.Sprintf("%d of %d entries", stats.Entries, stats.MaxEntries)
		return Healthy(msg).WithDetails(map[string]any{
			"entries":     stats.Entries,
			"max_entries": stats.MaxEntries,
			"evicted":     stats.Evicted,
			"swept":       stats.Swept,
		})
	})
}

// AdmissionChecker reports quota consumption. An exhausted daily
// quota degrades the instance rather than failing it: the quota is
// shared, so pulling an instance from rotation would not restore it.
func AdmissionChecker(c *admission.Controller) Checker {
	return CheckerFunc(func(context.Context) Result {
		stats := c.Stats()
		details := map[string]any{
			"clients":      stats.Clients,
			"global_count": stats.GlobalCount,
			"daily_count":  stats.DailyCount,
			"daily_limit":  stats.DailyLimit,
			"daily_reset":  stats.DailyResetAt.UTC().Format(time.RFC3339),
		}

		if stats.DailyLimit > 0 && stats.DailyCount >= stats.DailyLimit {
			return Degraded("daily quota exhausted").WithDetails(details)
		}
		msg := fmt.Sprintf("%d of %d daily requests used", stats.DailyCount, stats.DailyLimit)
		return Healthy(msg).WithDetails(details)
	})
}
