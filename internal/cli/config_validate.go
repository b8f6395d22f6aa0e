package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/config"
	"github.com/qaim-b/the-green-pulse/internal/predict"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration (global file, project overlay and
environment) for syntax and semantic correctness.

This includes:
- Config version against the supported range
- Output format, precision and logging settings
- Cache TTL and portfolio batch limits
- Custom certification tier ladders
- The model artifact, when model.path is set`,
		Example: `  # Validate current configuration
  greenpulse config validate

  # Validate and show detailed information
  greenpulse config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if cfg.Model.Path != "" {
		if _, err := predict.LoadModel(cfg.Model.Path); err != nil {
			return fmt.Errorf("configuration validation failed: model.path: %w", err)
		}
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project overlay: %s\n", dir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Cache: enabled=%t ttl=%s\n", cfg.Cache.Enabled, cfg.Cache.TTL)
	cmd.Printf("  Portfolio: batch_size=%d concurrency=%d\n", cfg.Portfolio.BatchSize, cfg.Portfolio.Concurrency)

	model := "built-in reference model"
	if cfg.Model.Path != "" {
		model = cfg.Model.Path
	}
	cmd.Printf("  Model: %s\n", model)

	printTierDetails(cmd, cfg)
}

// printTierDetails prints the effective credit ladder.
func printTierDetails(cmd *cobra.Command, cfg *config.Config) {
	tiers, err := cfg.TierTable()
	if err != nil {
		return
	}
	label := "custom"
	if len(cfg.Certification.Tiers) == 0 {
		label = "LEED v4.1 default"
	}
	cmd.Printf("  Credit ladder (%s): %d tiers, %d-%d points\n",
		label, len(tiers.Tiers()), tiers.MinCredits(), tiers.MaxCredits())
	for _, t := range tiers.Tiers() {
		cmd.Printf("    - %s -> %d pts\n", formatThreshold(t), t.Points)
	}
}

func formatThreshold(t certification.Tier) string {
	return fmt.Sprintf(">= %g%%", t.ThresholdPct)
}
