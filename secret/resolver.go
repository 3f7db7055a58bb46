package secret

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider resolves one reference scheme.
//
// Contract:
//   - Implementations must be safe for concurrent use.
//   - Resolve must never log or wrap the resolved value into the
//     returned error.
type Provider interface {
	// Name is the scheme this provider answers to.
	Name() string

	// Resolve turns a reference into the secret value.
	Resolve(ctx context.Context, ref string) (string, error)
}

// EnvProvider resolves env:VAR references from the environment.
type EnvProvider struct{}

// Name returns "env".
func (EnvProvider) Name() string { return "env" }

// Resolve reads the named variable. Unset and empty are both errors.
func (EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	value, ok := os.LookupEnv(ref)
	if !ok {
		return "", fmt.Errorf("secret: environment variable %s is not set", ref)
	}
	if value == "" {
		return "", fmt.Errorf("secret: environment variable %s is empty", ref)
	}
	return value, nil
}

// FileProvider resolves file:/path references, for secrets mounted by
// an orchestrator.
type FileProvider struct{}

// Name returns "file".
func (FileProvider) Name() string { return "file" }

// Resolve reads the file and trims surrounding whitespace, since
// mounted secrets routinely carry a trailing newline.
func (FileProvider) Resolve(_ context.Context, ref string) (string, error) {
	raw, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("secret: reading %s: %w", ref, err)
	}
	value := strings.TrimSpace(string(raw))
	if value == "" {
		return "", fmt.Errorf("secret: file %s is empty", ref)
	}
	return value, nil
}

// Resolver resolves configuration values through scheme providers.
type Resolver struct {
	providers map[string]Provider
}

// NewResolver creates a resolver with the env and file providers
// built in. Extra providers extend or override by name.
func NewResolver(extra ...Provider) *Resolver {
	r := &Resolver{providers: make(map[string]Provider)}
	r.Register(EnvProvider{})
	r.Register(FileProvider{})
	for _, p := range extra {
		r.Register(p)
	}
	return r
}

// Register adds a provider under its scheme name.
func (r *Resolver) Register(p Provider) {
	if p == nil {
		return
	}
	r.providers[p.Name()] = p
}

// Resolve expands environment references in value and then resolves a
// scheme prefix if one matches a registered provider. Values without a
// known scheme are returned as literals.
func (r *Resolver) Resolve(ctx context.Context, value string) (string, error) {
	expanded, err := ExpandEnvStrict(value)
	if err != nil {
		return "", err
	}

	scheme, ref, ok := strings.Cut(expanded, ":")
	if !ok || ref == "" {
		return expanded, nil
	}
	p, known := r.providers[scheme]
	if !known {
		return expanded, nil
	}
	return p.Resolve(ctx, ref)
}
