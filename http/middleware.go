package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sagarc03/s3gate"
)

// APIKeyHeader carries the caller's opaque credential.
const APIKeyHeader = "x-api-key"

// identityKey is the context key for the admitted identity.
type identityKey struct{}

// WithIdentity returns a context carrying the admitted identity.
func WithIdentity(ctx context.Context, id s3gate.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom retrieves the admitted identity from the context.
func IdentityFrom(ctx context.Context) (s3gate.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(s3gate.Identity)
	return id, ok
}

// IdentityResolver resolves API keys to identities.
type IdentityResolver interface {
	Lookup(apiKey string) (s3gate.Identity, error)
}

// Admitter decides rate-limit admission per username.
type Admitter interface {
	Allow(username string) bool
}

// SecurityHeaders injects the fixed security header set on every response.
// It runs outermost so the headers are present on errors written by inner
// middleware as well.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		next.ServeHTTP(w, r)
	})
}

// RequestID tags each request with a generated ID for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

// AdmissionMiddleware runs the pre-dispatch pipeline stages in order:
// structural validation, identity resolution, rate-limit admission. The
// rate-limiter append is the only mutation before backend dispatch. The
// admitted identity is stored on the request context for handlers.
func AdmissionMiddleware(resolver IdentityResolver, limiter Admitter, maxPayloadSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := s3gate.CheckPayloadSize(r.Method, r.ContentLength, maxPayloadSize); err != nil {
				HandleError(w, err)
				return
			}

			if _, _, err := s3gate.SplitObjectPath(r.URL.Path); err != nil {
				HandleError(w, err)
				return
			}

			// One generic failure for missing, malformed, and unknown keys;
			// anything more specific would let callers enumerate keys. The
			// key itself is never logged.
			apiKey := r.Header.Get(APIKeyHeader)
			if apiKey == "" {
				slog.Warn("no API key provided", "path", r.URL.Path)
				WriteError(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			identity, err := resolver.Lookup(apiKey)
			if err != nil {
				slog.Warn("invalid API key", "path", r.URL.Path)
				WriteError(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			if !limiter.Allow(identity.Username) {
				slog.Warn("rate limit exceeded", "user", identity.Username)
				WriteError(w, http.StatusBadRequest, "rate limit exceeded")
				return
			}

			slog.Debug("admitted request", "user", identity.Username, "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
