package s3gate

import "fmt"

// IdentityStore resolves API keys to caller identities. The table is built
// once at load time and is safe for unbounded concurrent reads.
type IdentityStore struct {
	byKey map[string]Identity
}

// NewIdentityStore indexes identities by API key. Two identities sharing an
// API key would make lookups ambiguous and are rejected.
func NewIdentityStore(identities []Identity) (*IdentityStore, error) {
	byKey := make(map[string]Identity, len(identities))
	for _, id := range identities {
		if id.APIKey == "" {
			return nil, fmt.Errorf("user %q has an empty api key", id.Username)
		}
		if prev, ok := byKey[id.APIKey]; ok {
			return nil, fmt.Errorf("users %q and %q share an api key", prev.Username, id.Username)
		}
		byKey[id.APIKey] = id
	}
	return &IdentityStore{byKey: byKey}, nil
}

// Lookup resolves an API key to an identity. The failure is the same
// ErrUnauthorized whether the key is malformed or simply unknown.
func (s *IdentityStore) Lookup(apiKey string) (Identity, error) {
	id, ok := s.byKey[apiKey]
	if !ok {
		return Identity{}, ErrUnauthorized
	}
	return id, nil
}

// Len returns the number of registered identities.
func (s *IdentityStore) Len() int {
	return len(s.byKey)
}
