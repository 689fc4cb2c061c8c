package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sagarc03/s3gate"
)

// Service is the gateway contract the handlers dispatch to. The identity has
// already been admitted; the service owns authorization and account routing.
type Service interface {
	ListObjects(ctx context.Context, id s3gate.Identity, bucket, prefix string) ([]s3gate.ObjectInfo, error)
	GetObject(ctx context.Context, id s3gate.Identity, bucket, key string) (io.ReadCloser, error)
	PutObject(ctx context.Context, id s3gate.Identity, bucket, key string, content io.Reader, contentType string) error
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	Identities     IdentityResolver
	Limiter        Admitter
	MaxPayloadSize int64
	CORS           CORSConfig
}

// Handler provides the HTTP surface over the gateway service.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a Handler with the given configuration and service.
// A zero MaxPayloadSize falls back to the default ceiling.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	h := &Handler{
		config:  *config,
		service: service,
	}
	if h.config.MaxPayloadSize <= 0 {
		h.config.MaxPayloadSize = s3gate.DefaultMaxPayloadSize
	}
	return h
}

// Router returns the configured route tree. Middleware order matters:
// security headers outermost so errors carry them too, then admission, then
// the handlers.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(SecurityHeaders)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Use(AdmissionMiddleware(h.config.Identities, h.config.Limiter, h.config.MaxPayloadSize))

	r.Get("/{bucket}", h.handleList)
	r.Get("/{bucket}/*", h.handleGet)
	r.Put("/{bucket}/*", h.handlePut)

	return r
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		HandleError(w, s3gate.ErrInternal)
		return
	}

	bucket, _, err := s3gate.SplitObjectPath(r.URL.Path)
	if err != nil {
		HandleError(w, err)
		return
	}
	prefix := r.URL.Query().Get("prefix")

	infos, err := h.service.ListObjects(r.Context(), identity, bucket, prefix)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteListXML(w, bucket, prefix, infos)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		HandleError(w, s3gate.ErrInternal)
		return
	}

	bucket, key, err := s3gate.SplitObjectPath(r.URL.Path)
	if err != nil {
		HandleError(w, err)
		return
	}

	content, err := h.service.GetObject(r.Context(), identity, bucket, key)
	if err != nil {
		HandleError(w, err)
		return
	}
	defer func() { _ = content.Close() }()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, content); err != nil {
		slog.Error("failed to stream object", "bucket", bucket, "key", key, "error", err)
	}
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		HandleError(w, s3gate.ErrInternal)
		return
	}

	bucket, key, err := s3gate.SplitObjectPath(r.URL.Path)
	if err != nil {
		HandleError(w, err)
		return
	}

	// The declared length was checked at admission; the reader cap covers
	// bodies sent without one.
	body := http.MaxBytesReader(w, r.Body, h.config.MaxPayloadSize)
	contentType := r.Header.Get("Content-Type")

	if err := h.service.PutObject(r.Context(), identity, bucket, key, body, contentType); err != nil {
		HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
