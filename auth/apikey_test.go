package auth

import (
	"errors"
	"testing"
)

func TestKeySetLookup(t *testing.T) {
	ks := NewKeySet(map[string]string{
		"mobile-app": "mk-12345",
		"web-app":    "wk-67890",
	})

	tests := []struct {
		name      string
		presented string
		wantName  string
		wantErr   bool
	}{
		{"known key", "mk-12345", "mobile-app", false},
		{"other known key", "wk-67890", "web-app", false},
		{"unknown key", "nope", "", true},
		{"empty key", "", "", true},
		{"name is not a key", "mobile-app", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ks.Lookup(tt.presented)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAPIKey) {
					t.Errorf("Lookup() error = %v, want %v", err, ErrUnknownAPIKey)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(): %v", err)
			}
			if id.Principal != tt.wantName {
				t.Errorf("Principal = %q, want %q", id.Principal, tt.wantName)
			}
			if id.Method != MethodAPIKey {
				t.Errorf("Method = %q, want %q", id.Method, MethodAPIKey)
			}
		})
	}
}

func TestKeySetSkipsEmptyKeys(t *testing.T) {
	ks := NewKeySet(map[string]string{
		"configured": "real-key",
		"misrendered": "",
	})
	if got := ks.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if _, err := ks.Lookup(""); err == nil {
		t.Error("Lookup(\"\") matched an empty configured key")
	}
}
