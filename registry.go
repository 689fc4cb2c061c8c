package s3gate

import (
	"fmt"
)

// AccountRegistry maps bucket names to the backend account that owns them.
// It is built once at load time and is safe for unbounded concurrent reads.
type AccountRegistry struct {
	accounts map[string]StorageAccount
	byBucket map[string]string
}

// NewAccountRegistry builds the bucket index. A bucket claimed by more than
// one account is a configuration error: the source of such a conflict is
// ambiguous and must be fixed, not tie-broken.
func NewAccountRegistry(accounts map[string]StorageAccount) (*AccountRegistry, error) {
	byBucket := make(map[string]string)
	for id, account := range accounts {
		for _, bucket := range account.Buckets {
			if prev, ok := byBucket[bucket]; ok && prev != id {
				return nil, fmt.Errorf("bucket %q claimed by accounts %q and %q", bucket, prev, id)
			}
			byBucket[bucket] = id
		}
	}

	reg := &AccountRegistry{
		accounts: make(map[string]StorageAccount, len(accounts)),
		byBucket: byBucket,
	}
	for id, account := range accounts {
		account.ID = id
		reg.accounts[id] = account
	}
	return reg, nil
}

// Resolve returns the account that owns the bucket.
// Returns ErrBucketNotFound when no account claims it.
func (r *AccountRegistry) Resolve(bucket string) (string, StorageAccount, error) {
	id, ok := r.byBucket[bucket]
	if !ok {
		return "", StorageAccount{}, fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	return id, r.accounts[id], nil
}

// Accounts returns the registered accounts keyed by ID.
func (r *AccountRegistry) Accounts() map[string]StorageAccount {
	out := make(map[string]StorageAccount, len(r.accounts))
	for id, account := range r.accounts {
		out[id] = account
	}
	return out
}
