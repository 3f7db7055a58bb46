// Package client is the Go SDK for the kana-dojo service.
//
// The client mirrors the server-side pipeline on the caller's side of
// the wire: results are cached locally under a shorter freshness bound,
// concurrent calls for the same input fold into one HTTP request, and
// retryable failures are retried with backoff, honoring the server's
// Retry-After when one is given. Failures surface as the same taxonomy
// the service emits, so callers branch on apierr.Code without caring
// which side produced the error.
package client
