package s3gate

import (
	"fmt"
	"time"
)

// Role gates write permission only; bucket visibility is decided by the
// identity's bucket patterns regardless of role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleReadonly Role = "readonly"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleReadonly:
		return true
	default:
		return false
	}
}

// CanWrite reports whether the role permits mutating operations.
func (r Role) CanWrite() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s (valid roles: admin, user, readonly)", s)
	}
	return role, nil
}

// Operation identifies a gateway operation for authorization decisions.
type Operation string

const (
	OpListObjects Operation = "ListObjects"
	OpGetObject   Operation = "GetObject"
	OpPutObject   Operation = "PutObject"
)

// IsMutating reports whether the operation writes to the backend.
func (op Operation) IsMutating() bool {
	return op == OpPutObject
}

// WildcardPattern in an identity's bucket patterns grants visibility into
// every bucket.
const WildcardPattern = "*"

// StorageAccount describes one backend account: where it lives, how to
// authenticate against it, and which buckets it owns. Accounts are built
// once at load time and never mutated.
type StorageAccount struct {
	ID              string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Buckets         []string
}

// Identity is a caller recognized by API key. Immutable after load.
type Identity struct {
	Username string
	APIKey   string
	Role     Role
	// Buckets holds permitted bucket patterns: exact names or WildcardPattern.
	Buckets []string
}

// AllowsBucket reports whether the identity's patterns cover the bucket.
func (id Identity) AllowsBucket(bucket string) bool {
	for _, pattern := range id.Buckets {
		if pattern == WildcardPattern || pattern == bucket {
			return true
		}
	}
	return false
}

// ObjectInfo is one entry in a bucket listing.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}
