package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/s3gate"
	gatehttp "github.com/sagarc03/s3gate/http"
	"github.com/sagarc03/s3gate/s3store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway HTTP server",
	Long:  `Start the s3gate HTTP server fronting the configured storage accounts.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "bind host")
	serveCmd.Flags().Int("port", 8080, "bind port")
	serveCmd.Flags().Int64("max-upload-size", s3gate.DefaultMaxPayloadSize, "maximum declared payload size in bytes")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	registry, err := s3gate.NewAccountRegistry(cfg.StorageAccounts())
	if err != nil {
		return fmt.Errorf("build account registry: %w", err)
	}

	identityList, err := cfg.Identities()
	if err != nil {
		return fmt.Errorf("build identities: %w", err)
	}

	identities, err := s3gate.NewIdentityStore(identityList)
	if err != nil {
		return fmt.Errorf("build identity store: %w", err)
	}

	limiter := s3gate.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())
	defer limiter.Stop()

	stores := make(map[string]s3gate.ObjectStore, len(cfg.Accounts))
	for id, account := range registry.Accounts() {
		store, err := s3store.New(ctx, account)
		if err != nil {
			return fmt.Errorf("create object store for account %s: %w", id, err)
		}
		stores[id] = store
	}

	gateway, err := s3gate.NewGateway(registry, stores)
	if err != nil {
		return fmt.Errorf("create gateway: %w", err)
	}

	handlerConfig := gatehttp.HandlerConfig{
		Identities:     identities,
		Limiter:        limiter,
		MaxPayloadSize: cfg.MaxUploadSize,
		CORS:           cfg.CORS,
	}
	handler := gatehttp.NewHandler(&handlerConfig, gateway)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "accounts", len(cfg.Accounts), "users", identities.Len())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
