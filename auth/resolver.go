package auth

import (
	"net"
	"net/http"
	"strings"
)

// Resolver establishes one Identity per request. Either verifier may
// be nil, in which case its credential type is ignored.
type Resolver struct {
	tokens *TokenVerifier
	keys   *KeySet
}

// NewResolver builds a resolver from the configured verifiers.
func NewResolver(tokens *TokenVerifier, keys *KeySet) *Resolver {
	return &Resolver{tokens: tokens, keys: keys}
}

// Resolve returns the identity for a request. Credentials are tried in
// order: bearer token, API key, client address. A request that presents
// a credential the resolver cannot verify still resolves, to the
// address identity, but the verification error is returned alongside it
// so the caller can log the downgrade.
func (r *Resolver) Resolve(req *http.Request) (Identity, error) {
	if token := bearerToken(req); token != "" && r.tokens != nil {
		id, err := r.tokens.Verify(token)
		if err == nil {
			return id, nil
		}
		return ipIdentity(req), err
	}
	if key := req.Header.Get("X-API-Key"); key != "" && r.keys != nil {
		id, err := r.keys.Lookup(key)
		if err == nil {
			return id, nil
		}
		return ipIdentity(req), err
	}
	return ipIdentity(req), nil
}

func bearerToken(req *http.Request) string {
	h := req.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

func ipIdentity(req *http.Request) Identity {
	ip := clientIP(req)
	if ip == "" {
		return Anonymous()
	}
	return Identity{Principal: ip, Method: MethodIP}
}

// clientIP returns the originating client address, honoring the
// forwarding headers set by a fronting proxy.
func clientIP(req *http.Request) string {
	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the originating client.
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	if real := strings.TrimSpace(req.Header.Get("X-Real-IP")); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(req.RemoteAddr)
	}
	return host
}
