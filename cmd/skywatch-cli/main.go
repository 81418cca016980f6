package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/skywatch/internal/app"
	"github.com/i474232898/skywatch/internal/config"
	"github.com/i474232898/skywatch/internal/logging"
)

var deps *app.App

var rootCmd = &cobra.Command{
	Use:   "skywatch-cli",
	Short: "Observatory visibility reports for the telescope network",
	Long: `
Fetch observatory sites and instrument status from the telescope network API
and print visibility reports. When the API cannot be reached the reports fall
back to simulated demo data.

Set LCO_API_TOKEN to access endpoints that require authentication.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		deps = app.New(cfg, logging.New(cfg))
		return nil
	},
}

func main() {
	rootCmd.AddCommand(probeCmd, sitesCmd, reportCmd, demoCmd, watchCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
