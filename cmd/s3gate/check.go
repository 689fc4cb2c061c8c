package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/s3gate"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration without serving",
	Long: `Load the configuration and run the same construction checks serve
performs: account fields, duplicate bucket claims, role names, and duplicate
API keys. Exits non-zero on the first problem found.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	registry, err := s3gate.NewAccountRegistry(cfg.StorageAccounts())
	if err != nil {
		return fmt.Errorf("account registry: %w", err)
	}

	identityList, err := cfg.Identities()
	if err != nil {
		return fmt.Errorf("identities: %w", err)
	}

	identities, err := s3gate.NewIdentityStore(identityList)
	if err != nil {
		return fmt.Errorf("identity store: %w", err)
	}

	buckets := 0
	for _, account := range registry.Accounts() {
		buckets += len(account.Buckets)
	}

	slog.Info("configuration is valid",
		"accounts", len(registry.Accounts()),
		"buckets", buckets,
		"users", identities.Len(),
	)
	return nil
}
