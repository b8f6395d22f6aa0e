package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qaim-b/the-green-pulse/internal/config"
	"github.com/qaim-b/the-green-pulse/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the greenpulse CLI. It
// resolves the project config overlay, sets up logging and registers the
// assessment and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "greenpulse",
		Short:         "Green building certification scoring",
		Long:          "The Green Pulse: score predicted building emissions against the LEED energy credit ladder",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			loadConfig(cmd)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "prediction cache TTL in seconds (0 = use config default)")
	cmd.PersistentFlags().
		String("model", "", "path to a model artifact (overrides model.path)")
	cmd.PersistentFlags().
		String("project-dir", "", "project directory holding a .greenpulse config overlay")
	cmd.PersistentFlags().
		Bool("plain", false, "disable styled terminal output")
	cmd.PersistentFlags().
		Bool("no-cache", false, "bypass the prediction cache")

	cmd.AddCommand(
		NewAssessCmd(), NewPortfolioCmd(), NewROICmd(), NewScenariosCmd(),
		newConfigCmd(), newCacheCmd(),
	)

	return cmd
}

// loadConfig resolves the project directory and installs the merged
// configuration as the global config for this invocation.
func loadConfig(cmd *cobra.Command) {
	flagDir, _ := cmd.Flags().GetString("project-dir")
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	projectDir := config.ResolveProjectDir(cmd.Context(), flagDir, wd)
	config.SetResolvedProjectDir(projectDir)
	config.SetGlobalConfig(config.NewWithProjectDir(cmd.Context(), projectDir))
}

const rootCmdExample = `  # Assess one building with the reference model
  greenpulse assess --area 15000 --type Office --hvac "Gas Furnace" \
    --insulation Good --climate Mixed-Humid --renewable 20 --led 50

  # Assess with a known emissions figure and show what-if improvements
  greenpulse assess --file hq.yaml --predicted 87.2 --what-if

  # Assess a CSV portfolio as NDJSON
  greenpulse portfolio buildings.csv --output ndjson

  # Compare retrofit packages
  greenpulse scenarios --area 15000 --tons 87.2

  # Initialize configuration
  greenpulse config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigGetCmd(), NewConfigValidateCmd())
	return cmd
}
