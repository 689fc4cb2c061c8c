package s3gate

import "fmt"

// Authorize decides whether the identity may perform the operation on the
// bucket. Two independent gates, both stateless:
//
//  1. Bucket visibility: the identity's patterns must contain the wildcard
//     or the exact bucket name. The denial names the bucket.
//  2. Write permission: mutating operations require the admin or user role.
//     The denial is generic so that role assignments cannot be probed.
//
// Either gate failing aborts the request before any backend call.
func Authorize(id Identity, bucket string, op Operation) error {
	if !id.AllowsBucket(bucket) {
		return fmt.Errorf("%w: not allowed to access bucket: %s", ErrUnauthorized, bucket)
	}
	if op.IsMutating() && !id.Role.CanWrite() {
		return fmt.Errorf("%w: write permission denied", ErrUnauthorized)
	}
	return nil
}
