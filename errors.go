package s3gate

import "errors"

var (
	// ErrUnauthorized is returned for missing or invalid credentials and for
	// authorization denials. Callers must surface it with minimal detail; the
	// same generic failure covers wrong keys and unknown users so that API
	// keys cannot be enumerated.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidRequest is returned for structural validation failures and
	// rate-limit rejections; both are client-correctable.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrBucketNotFound is returned when no account claims the bucket.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrObjectNotFound is returned when the backend reports a missing key.
	ErrObjectNotFound = errors.New("object not found")
	// ErrBackend wraps unexpected backend failures.
	ErrBackend = errors.New("backend error")
	// ErrInternal is returned for gateway-side defects, such as a registered
	// account missing its client.
	ErrInternal = errors.New("internal error")
)
