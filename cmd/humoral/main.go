package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbretey/humoral/internal/config"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "humoral",
		Short: "Humoral - within-host antibody dynamics for malaria",
		Long: `humoral simulates the acquisition and decay of antibody responses
against malaria antigens within a single host.

It runs exposure scenarios over a host's antibody repertoire, records
per-day state to a local database, and reports per-family peaks.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newParamsCmd(),
		newRunsCmd(),
	)

	return rootCmd
}

// loadConfig resolves the effective configuration for a command:
// defaults, the --config file if given, then environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
