package s3gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/s3gate"
)

func TestNewAccountRegistry(t *testing.T) {
	t.Run("indexes buckets by owning account", func(t *testing.T) {
		reg, err := s3gate.NewAccountRegistry(map[string]s3gate.StorageAccount{
			"east": {Endpoint: "https://east.example.com", Region: "us-east-1", Buckets: []string{"b1", "b2"}},
			"west": {Endpoint: "https://west.example.com", Region: "us-west-2", Buckets: []string{"b3"}},
		})
		require.NoError(t, err)

		id, account, err := reg.Resolve("b3")
		require.NoError(t, err)
		assert.Equal(t, "west", id)
		assert.Equal(t, "west", account.ID)
		assert.Equal(t, "https://west.example.com", account.Endpoint)
	})

	t.Run("rejects a bucket claimed by two accounts", func(t *testing.T) {
		_, err := s3gate.NewAccountRegistry(map[string]s3gate.StorageAccount{
			"a": {Buckets: []string{"shared"}},
			"b": {Buckets: []string{"shared"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shared")
	})

	t.Run("allows the same account listing a bucket twice", func(t *testing.T) {
		_, err := s3gate.NewAccountRegistry(map[string]s3gate.StorageAccount{
			"a": {Buckets: []string{"b1", "b1"}},
		})
		assert.NoError(t, err)
	})
}

func TestAccountRegistry_Resolve(t *testing.T) {
	reg, err := s3gate.NewAccountRegistry(map[string]s3gate.StorageAccount{
		"east": {Buckets: []string{"b1"}},
	})
	require.NoError(t, err)

	t.Run("unknown bucket", func(t *testing.T) {
		_, _, err := reg.Resolve("nope")
		assert.ErrorIs(t, err, s3gate.ErrBucketNotFound)
	})

	t.Run("resolution is deterministic", func(t *testing.T) {
		first, _, err := reg.Resolve("b1")
		require.NoError(t, err)

		for range 10 {
			id, _, err := reg.Resolve("b1")
			require.NoError(t, err)
			assert.Equal(t, first, id)
		}
	})
}
