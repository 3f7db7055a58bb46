// Package admission gates requests before they consume the shared
// downstream quota.
//
// Three fixed-window tiers are checked on every request: per-client,
// global, and daily. Each tier's counter increments on every checked
// request and resets when its window elapses. A request is denied when
// any tier is over its ceiling; the reported reason is the
// highest-priority denying tier (daily over global over per-client) and
// the retry hint is the nearest reset among the denying tiers.
//
// State is process-wide and never persisted: a restart resets all
// quotas. Denial is advisory back-pressure, not a failure of the
// request pipeline.
package admission
