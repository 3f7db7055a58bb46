// Package auth resolves a client identity for every request.
//
// Identity here is a rate-limit partition key, not access control: the
// endpoints are public, but each caller must be attributable to one
// per-client admission bucket. Resolution order is HMAC-signed bearer
// token, then API key, then client IP. Invalid credentials degrade to
// the IP identity rather than rejecting the request.
package auth
