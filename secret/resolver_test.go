package secret

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestResolverLiteralPassthrough(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name string
		in   string
	}{
		{"plain", "0aa1b2c3-key"},
		{"colon without known scheme", "0aa1b2c3-key:fx"},
		{"unregistered scheme", "vault:some/path"},
		{"trailing colon", "env:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.in, err)
			}
			if got != tt.in {
				t.Errorf("Resolve(%q) = %q, want passthrough", tt.in, got)
			}
		})
	}
}

func TestResolverEnvScheme(t *testing.T) {
	t.Setenv("KANADOJO_TEST_API_KEY", "from-env")

	r := NewResolver()
	got, err := r.Resolve(context.Background(), "env:KANADOJO_TEST_API_KEY")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "from-env" {
		t.Errorf("got %q, want from-env", got)
	}

	if _, err := r.Resolve(context.Background(), "env:KANADOJO_TEST_NOPE"); err == nil {
		t.Error("unset variable should error, not pass through")
	}
}

func TestResolverEmptyEnvRejected(t *testing.T) {
	t.Setenv("KANADOJO_TEST_EMPTY", "")

	r := NewResolver()
	if _, err := r.Resolve(context.Background(), "env:KANADOJO_TEST_EMPTY"); err == nil {
		t.Error("empty variable should error")
	}
}

func TestResolverFileScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_key")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	r := NewResolver()
	got, err := r.Resolve(context.Background(), "file:"+path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "from-file" {
		t.Errorf("got %q, want from-file with newline trimmed", got)
	}

	if _, err := r.Resolve(context.Background(), "file:"+path+".missing"); err == nil {
		t.Error("missing file should error")
	}
}

func TestResolverExpandsBeforeScheme(t *testing.T) {
	t.Setenv("KANADOJO_TEST_VAR", "indirect-value")
	t.Setenv("KANADOJO_TEST_NAME", "KANADOJO_TEST_VAR")

	r := NewResolver()
	got, err := r.Resolve(context.Background(), "env:${KANADOJO_TEST_NAME}")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "indirect-value" {
		t.Errorf("got %q, want indirect-value", got)
	}
}

type fixedProvider struct {
	name  string
	value string
}

func (p fixedProvider) Name() string { return p.name }
func (p fixedProvider) Resolve(context.Context, string) (string, error) {
	return p.value, nil
}

func TestResolverCustomProvider(t *testing.T) {
	r := NewResolver(fixedProvider{name: "vault", value: "vaulted"})

	got, err := r.Resolve(context.Background(), "vault:secret/deepl")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "vaulted" {
		t.Errorf("got %q, want vaulted", got)
	}
}
