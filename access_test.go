package s3gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/s3gate"
)

func TestAuthorize_Visibility(t *testing.T) {
	t.Run("wildcard allows every bucket", func(t *testing.T) {
		id := s3gate.Identity{Username: "alice", Role: s3gate.RoleUser, Buckets: []string{"*"}}

		for _, bucket := range []string{"b1", "b2", "anything"} {
			assert.NoError(t, s3gate.Authorize(id, bucket, s3gate.OpGetObject))
		}
	})

	t.Run("exact pattern allows only the named bucket", func(t *testing.T) {
		id := s3gate.Identity{Username: "bob", Role: s3gate.RoleUser, Buckets: []string{"b1"}}

		assert.NoError(t, s3gate.Authorize(id, "b1", s3gate.OpListObjects))

		err := s3gate.Authorize(id, "b2", s3gate.OpListObjects)
		require.ErrorIs(t, err, s3gate.ErrUnauthorized)
		assert.Contains(t, err.Error(), "b2", "denial should name the bucket")
	})

	t.Run("empty pattern set denies everything", func(t *testing.T) {
		id := s3gate.Identity{Username: "carol", Role: s3gate.RoleAdmin}
		assert.ErrorIs(t, s3gate.Authorize(id, "b1", s3gate.OpGetObject), s3gate.ErrUnauthorized)
	})
}

func TestAuthorize_WriteGate(t *testing.T) {
	t.Run("readonly is denied writes regardless of visibility", func(t *testing.T) {
		id := s3gate.Identity{Username: "ro", Role: s3gate.RoleReadonly, Buckets: []string{"*"}}

		err := s3gate.Authorize(id, "b1", s3gate.OpPutObject)
		require.ErrorIs(t, err, s3gate.ErrUnauthorized)
		assert.Contains(t, err.Error(), "write permission denied")
		assert.NotContains(t, err.Error(), "readonly", "denial must not leak the role")
	})

	t.Run("admin and user writes follow visibility only", func(t *testing.T) {
		for _, role := range []s3gate.Role{s3gate.RoleAdmin, s3gate.RoleUser} {
			id := s3gate.Identity{Username: "w", Role: role, Buckets: []string{"b1"}}
			assert.NoError(t, s3gate.Authorize(id, "b1", s3gate.OpPutObject))
			assert.ErrorIs(t, s3gate.Authorize(id, "b2", s3gate.OpPutObject), s3gate.ErrUnauthorized)
		}
	})

	t.Run("reads never consult the role", func(t *testing.T) {
		id := s3gate.Identity{Username: "ro", Role: s3gate.RoleReadonly, Buckets: []string{"b1"}}
		assert.NoError(t, s3gate.Authorize(id, "b1", s3gate.OpGetObject))
		assert.NoError(t, s3gate.Authorize(id, "b1", s3gate.OpListObjects))
	})
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "user", "readonly"} {
		role, err := s3gate.ParseRole(valid)
		require.NoError(t, err)
		assert.True(t, role.IsValid())
	}

	_, err := s3gate.ParseRole("superuser")
	assert.Error(t, err)
}
