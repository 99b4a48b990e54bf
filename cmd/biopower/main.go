package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/trialworks/biopower/internal/config"
	"github.com/trialworks/biopower/internal/logging"
	"github.com/trialworks/biopower/internal/stats"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "biopower",
		Short: "Clinical-trial biomarker simulation and power analysis",
		Long: `biopower simulates longitudinal biomarker cohorts and sizes
experiments across three design families: bulk proteomic two-arm tests,
single-cell pseudobulk designs, and spatial-transcriptomics hierarchical
designs.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("format", "json", "Output format: json, yaml or csv")
	rootCmd.PersistentFlags().Int64("seed", 0, "RNG seed; 0 seeds from the clock")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newAugmentCmd(),
		newSummaryCmd(),
		newPowerCmd(),
		newScenariosCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "biopower version %s\n", version)
		},
	}
}

// app bundles the loaded configuration and logger shared by all commands.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

func loadApp(cmd *cobra.Command) (*app, error) {
	// A .env alongside the binary may carry BIOPOWER_* overrides.
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &app{cfg: cfg, log: logging.New(cfg.LogLevel)}, nil
}

func sourceFromFlags(cmd *cobra.Command) *stats.Source {
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed != 0 {
		return stats.NewSource(seed)
	}
	return stats.NewTimeSource()
}
