// Package translate calls the machine translation provider.
//
// The only production implementation speaks the DeepL v2 wire protocol,
// which several self-hosted engines also expose, so the provider is
// swappable by base URL. Calls are paced with a token bucket and guarded
// by a circuit breaker and per-attempt timeout; failures come back as
// taxonomy errors so handlers and the cache layer can treat provider
// trouble uniformly.
package translate
