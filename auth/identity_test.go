package auth

import "testing"

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		want string
	}{
		{"token subject", Identity{Principal: "user-42", Method: MethodToken}, "token:user-42"},
		{"api key name", Identity{Principal: "mobile-app", Method: MethodAPIKey}, "api_key:mobile-app"},
		{"ip address", Identity{Principal: "203.0.113.9", Method: MethodIP}, "ip:203.0.113.9"},
		{"subject shaped like an address", Identity{Principal: "203.0.113.9", Method: MethodToken}, "token:203.0.113.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentityKeyDistinguishesMethods(t *testing.T) {
	a := Identity{Principal: "203.0.113.9", Method: MethodToken}
	b := Identity{Principal: "203.0.113.9", Method: MethodIP}
	if a.Key() == b.Key() {
		t.Errorf("identities with different methods share key %q", a.Key())
	}
}

func TestAnonymous(t *testing.T) {
	id := Anonymous()
	if id.Method != MethodIP {
		t.Errorf("Anonymous().Method = %q, want %q", id.Method, MethodIP)
	}
	if id.Principal == "" {
		t.Error("Anonymous().Principal is empty")
	}
}
