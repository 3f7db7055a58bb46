// Package service orchestrates the shared caching layer in front of
// translation and text analysis.
//
// Both operations run the same sequence: validate, admission check,
// cache lookup under a freshness bound, then a coalesced upstream call
// whose successful result is cached. Failures are never cached, and a
// coalesced call runs detached from its initiating caller, so an
// abandoned request still completes and populates the cache.
package service
