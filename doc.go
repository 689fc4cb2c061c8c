// Package s3gate provides a multi-tenant gateway that fronts multiple
// independently-credentialed S3 accounts behind a single HTTP surface.
//
// Callers are identified by an opaque API key and scoped to a set of bucket
// patterns; buckets are routed to the backend account that owns them. Every
// request passes through an admission pipeline before any storage I/O:
// structural validation, identity resolution, sliding-window rate limiting,
// role-based authorization, and account routing.
//
// # Key Components
//
//   - AccountRegistry: immutable bucket -> backend account table
//   - IdentityStore: immutable API key -> caller identity table
//   - RateLimiter: shared per-username sliding-window counter
//   - Gateway: per-request orchestration and dispatch to an ObjectStore
//   - ObjectStore: backend client contract (see the s3store package)
//
// # Example Usage
//
//	registry, err := s3gate.NewAccountRegistry(accounts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gw, err := s3gate.NewGateway(registry, stores)
//
//	// List objects visible to an identity
//	infos, err := gw.ListObjects(ctx, identity, "reports", "2026/")
//
// See the http package for the REST surface and the config package for
// startup configuration.
package s3gate
