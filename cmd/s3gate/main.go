package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/s3gate/config"
)

var version = "dev"

var (
	configFiles []string
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "s3gate",
	Short:   "Multi-tenant gateway for S3-compatible storage accounts",
	Long: `s3gate fronts multiple independently-credentialed S3 accounts behind
a single HTTP endpoint. Callers authenticate with an API key and only see
the buckets their identity permits; backend credentials never leave the
gateway.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", nil, "config file path (default: ./config.yaml; repeatable, later files override earlier ones)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
