package client

import "net/http"

// authTransport injects the configured credentials into every outgoing
// request. The request is cloned first; a RoundTripper must not mutate
// its input.
type authTransport struct {
	base   http.RoundTripper
	apiKey string
	token  string
}

// newAuthTransport wraps base with credential injection. With no
// credentials configured the base transport is returned unchanged.
func newAuthTransport(base http.RoundTripper, apiKey, token string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if apiKey == "" && token == "" {
		return base
	}
	return &authTransport{base: base, apiKey: apiKey, token: token}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.apiKey != "" {
		clone.Header.Set("X-API-Key", t.apiKey)
	}
	if t.token != "" {
		clone.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.base.RoundTrip(clone)
}

var _ http.RoundTripper = (*authTransport)(nil)
