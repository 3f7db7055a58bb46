package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Keyer derives deterministic cache keys from operation parameters.
//
// Contract:
// - Determinism: identical (op, text, params) always produce the same key.
// - Normalization: text is trimmed before hashing; equality beyond
//   trimming is exact, with no folding or fuzzy matching.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key derives a cache key for one operation invocation.
	Key(op, text string, params ...string) string
}

// HashKeyer generates SHA-256 based cache keys.
type HashKeyer struct{}

// NewHashKeyer creates the default keyer.
func NewHashKeyer() *HashKeyer {
	return &HashKeyer{}
}

// Key derives a key of the form <op>:<hash>, where hash is the first 16
// hex characters of SHA-256 over the canonical JSON of
// [op, params..., trimmedText]. JSON framing keeps field boundaries
// unambiguous ("ab"+"c" never collides with "a"+"bc").
func (k *HashKeyer) Key(op, text string, params ...string) string {
	parts := make([]string, 0, len(params)+2)
	parts = append(parts, op)
	parts = append(parts, params...)
	parts = append(parts, strings.TrimSpace(text))

	canonical, err := json.Marshal(parts)
	if err != nil {
		// Unreachable for a string slice; keep the key well-formed anyway.
		canonical = []byte(strings.Join(parts, "\x00"))
	}

	hash := sha256.Sum256(canonical)
	return fmt.Sprintf("%s:%s", op, hex.EncodeToString(hash[:8]))
}

// Ensure HashKeyer implements Keyer
var _ Keyer = (*HashKeyer)(nil)
