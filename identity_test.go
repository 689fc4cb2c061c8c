package s3gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/s3gate"
)

func TestNewIdentityStore(t *testing.T) {
	t.Run("rejects duplicate api keys", func(t *testing.T) {
		_, err := s3gate.NewIdentityStore([]s3gate.Identity{
			{Username: "alice", APIKey: "k1", Role: s3gate.RoleAdmin},
			{Username: "bob", APIKey: "k1", Role: s3gate.RoleUser},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "share an api key")
	})

	t.Run("rejects empty api key", func(t *testing.T) {
		_, err := s3gate.NewIdentityStore([]s3gate.Identity{
			{Username: "alice", Role: s3gate.RoleAdmin},
		})
		assert.Error(t, err)
	})
}

func TestIdentityStore_Lookup(t *testing.T) {
	store, err := s3gate.NewIdentityStore([]s3gate.Identity{
		{Username: "alice", APIKey: "k1", Role: s3gate.RoleAdmin, Buckets: []string{"*"}},
		{Username: "bob", APIKey: "k2", Role: s3gate.RoleReadonly, Buckets: []string{"b1"}},
	})
	require.NoError(t, err)

	t.Run("known key", func(t *testing.T) {
		id, err := store.Lookup("k2")
		require.NoError(t, err)
		assert.Equal(t, "bob", id.Username)
		assert.Equal(t, s3gate.RoleReadonly, id.Role)
	})

	t.Run("unknown key fails with the bare sentinel", func(t *testing.T) {
		_, err := store.Lookup("wrong")
		require.ErrorIs(t, err, s3gate.ErrUnauthorized)
		// No detail beyond the sentinel: the message must not reveal whether
		// the key was malformed or simply unknown.
		assert.Equal(t, s3gate.ErrUnauthorized.Error(), err.Error())
	})

	t.Run("empty key fails the same way", func(t *testing.T) {
		_, err := store.Lookup("")
		require.ErrorIs(t, err, s3gate.ErrUnauthorized)
		assert.Equal(t, s3gate.ErrUnauthorized.Error(), err.Error())
	})
}
