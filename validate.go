package s3gate

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxPayloadSize is the declared-content-length ceiling for write
// requests when configuration does not override it.
const DefaultMaxPayloadSize = 100 << 20 // 100 MiB

// CheckPayloadSize rejects write requests whose declared content length
// exceeds the ceiling. A request without a declared length (contentLength < 0)
// passes; the ceiling applies only to what the caller declares up front.
func CheckPayloadSize(method string, contentLength int64, maxSize int64) error {
	if method != http.MethodPut && method != http.MethodPost {
		return nil
	}
	if contentLength > maxSize {
		return fmt.Errorf("%w: declared size %d exceeds maximum allowed size of %d bytes",
			ErrInvalidRequest, contentLength, maxSize)
	}
	return nil
}

// SplitObjectPath decomposes a request path into a bucket and an optional
// key. The key is the remainder of the path after the bucket segment and may
// itself contain slashes: "/b/a/c" is bucket "b", key "a/c". An empty path or
// an empty bucket segment fails with ErrInvalidRequest.
func SplitObjectPath(path string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return "", "", fmt.Errorf("%w: empty path", ErrInvalidRequest)
	}

	bucket, key, _ = strings.Cut(trimmed, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: invalid path format", ErrInvalidRequest)
	}
	return bucket, key, nil
}
