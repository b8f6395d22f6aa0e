package cli

import (
	"github.com/spf13/cobra"

	"github.com/qaim-b/the-green-pulse/internal/config"
)

// NewConfigGetCmd creates the config get command, which prints one
// effective setting by its dotted key.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Long: `Prints the effective value of a configuration key after the project
overlay and environment overrides are applied. Keys use dot notation; a
section key prints the whole section as YAML.`,
		Example: `  # Output format
  greenpulse config get output.default_format

  # Cache TTL
  greenpulse config get cache.ttl

  # Whole portfolio section
  greenpulse config get portfolio`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		},
	}
}
