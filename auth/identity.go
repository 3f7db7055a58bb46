package auth

// Method records how an identity was established.
type Method string

const (
	// MethodToken indicates a verified HMAC-signed bearer token.
	MethodToken Method = "token"
	// MethodAPIKey indicates a recognized API key.
	MethodAPIKey Method = "api_key"
	// MethodIP indicates the fallback network-address identity.
	MethodIP Method = "ip"
)

// Identity is the admission partition for a request. Two requests with
// the same Key share rate-limit counters and nothing else.
type Identity struct {
	// Principal is the stable subject: a token subject claim, an API
	// key name, or a client IP address.
	Principal string
	// Method records how Principal was established.
	Method Method
}

// Key returns the admission partition key. The method prefix keeps a
// token subject named "10.0.0.1" from sharing a counter with the host
// at that address.
func (id Identity) Key() string {
	return string(id.Method) + ":" + id.Principal
}

// Anonymous returns the identity used when no client address can be
// determined at all.
func Anonymous() Identity {
	return Identity{Principal: "unknown", Method: MethodIP}
}
