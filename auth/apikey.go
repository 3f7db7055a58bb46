package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// KeySet matches presented API keys against a configured set. Keys are
// held as SHA-256 digests so the plaintext never sits in memory longer
// than configuration load, and comparison is constant time.
type KeySet struct {
	// digest hex -> key name
	keys map[string]string
}

// NewKeySet builds a key set from a name -> plaintext key map, as
// loaded from configuration.
func NewKeySet(keys map[string]string) *KeySet {
	ks := &KeySet{keys: make(map[string]string, len(keys))}
	for name, key := range keys {
		if key == "" {
			continue
		}
		ks.keys[hashKey(key)] = name
	}
	return ks
}

// Lookup resolves a presented key to the identity of its named owner.
func (ks *KeySet) Lookup(presented string) (Identity, error) {
	if presented == "" {
		return Identity{}, ErrUnknownAPIKey
	}
	digest := hashKey(presented)
	for stored, name := range ks.keys {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(digest)) == 1 {
			return Identity{Principal: name, Method: MethodAPIKey}, nil
		}
	}
	return Identity{}, ErrUnknownAPIKey
}

// Len reports how many keys are configured.
func (ks *KeySet) Len() int { return len(ks.keys) }

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
