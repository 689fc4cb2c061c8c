package s3gate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// ObjectStore defines the backend client contract for one storage account.
// Implementations supply their own credentials and endpoint; the gateway
// never retries on their behalf.
//
// All methods accept a context for cancellation and timeout control. A
// backend call that cannot complete must surface an error rather than block
// indefinitely.
type ObjectStore interface {
	// ListObjects returns every object in the bucket matching the optional
	// prefix, aggregated transparently across backend pagination and in
	// backend-returned order.
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)

	// GetObject returns a reader over the object's content.
	// Returns ErrObjectNotFound when the key does not exist; any other
	// backend failure wraps ErrBackend.
	//
	// The caller is responsible for closing the returned ReadCloser.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	// PutObject stores the content under the key, carrying the caller's
	// declared content type when non-empty.
	PutObject(ctx context.Context, bucket, key string, content io.Reader, contentType string) error
}

// Gateway orchestrates authorization, account routing, and backend dispatch
// for a request whose caller has already been admitted (validated,
// identified, rate-checked). It holds no mutable state.
type Gateway struct {
	registry *AccountRegistry
	stores   map[string]ObjectStore
}

// NewGateway wires the registry to one ObjectStore per account. Every
// registered account must have a store; a missing one would only surface as
// an internal error at request time, so it is rejected here.
func NewGateway(registry *AccountRegistry, stores map[string]ObjectStore) (*Gateway, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	for id := range registry.Accounts() {
		if stores[id] == nil {
			return nil, fmt.Errorf("account %q has no object store", id)
		}
	}
	return &Gateway{registry: registry, stores: stores}, nil
}

// route authorizes the identity for the operation and resolves the owning
// account's store.
func (g *Gateway) route(id Identity, bucket string, op Operation) (ObjectStore, error) {
	if err := Authorize(id, bucket, op); err != nil {
		slog.Warn("authorization denied", "user", id.Username, "bucket", bucket, "op", string(op))
		return nil, err
	}

	accountID, _, err := g.registry.Resolve(bucket)
	if err != nil {
		return nil, err
	}

	store, ok := g.stores[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: no object store for account %s", ErrInternal, accountID)
	}
	return store, nil
}

// ListObjects lists the bucket's contents, optionally filtered by prefix.
func (g *Gateway) ListObjects(ctx context.Context, id Identity, bucket, prefix string) ([]ObjectInfo, error) {
	store, err := g.route(id, bucket, OpListObjects)
	if err != nil {
		return nil, err
	}

	infos, err := store.ListObjects(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}

	slog.Info("listed objects", "user", id.Username, "bucket", bucket, "count", len(infos))
	return infos, nil
}

// GetObject fetches one object. The caller must close the returned reader.
func (g *Gateway) GetObject(ctx context.Context, id Identity, bucket, key string) (io.ReadCloser, error) {
	store, err := g.route(id, bucket, OpGetObject)
	if err != nil {
		return nil, err
	}
	return store.GetObject(ctx, bucket, key)
}

// PutObject stores one object under the caller's declared content type.
func (g *Gateway) PutObject(ctx context.Context, id Identity, bucket, key string, content io.Reader, contentType string) error {
	store, err := g.route(id, bucket, OpPutObject)
	if err != nil {
		return err
	}

	if err := store.PutObject(ctx, bucket, key, content, contentType); err != nil {
		return err
	}

	slog.Info("stored object", "user", id.Username, "bucket", bucket, "key", key)
	return nil
}
