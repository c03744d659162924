package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/Flarenzy/ipam-usage/internal/app"
	"github.com/Flarenzy/ipam-usage/internal/config"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "ipam-usage",
	Short: "Report per-tenant used and unused IPv4 addresses",
	Long: `ipam-usage reads an existing IPAM database and prints, per tenant,
how many IPv4 addresses are in use and how many remain available on the
target network. The result is a single JSON object on stdout.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		// stdout carries only the report, logs go to stderr.
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

		return app.Run(cmd.Context(), logger, cfg, cmd.OutOrStdout())
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config-file", "",
		"path to the config file (default: ipam-usage.yaml in . or /etc/ipam-usage)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
