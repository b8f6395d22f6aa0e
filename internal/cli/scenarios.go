package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qaim-b/the-green-pulse/internal/engine"
	"github.com/qaim-b/the-green-pulse/internal/logging"
)

// NewScenariosCmd creates the scenarios command, which compares retrofit
// packages for one building.
func NewScenariosCmd() *cobra.Command {
	var params measureParams

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Compare retrofit packages",
		Long: `Compares single measures and combined packages for a building of the given
size and emissions: new emissions, total cost, annual savings, payback,
10-year ROI and the credit boost each package could bring.`,
		Example: `  # Every built-in scenario
  greenpulse scenarios --area 15000 --tons 87.2

  # Two packages only
  greenpulse scenarios --area 15000 --tons 87.2 --scenario "Solar + Heat Pump" --scenario "Full Package"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeScenarios(cmd, params)
		},
	}

	addMeasureFlags(cmd, &params)
	cmd.Flags().StringArrayVar(&params.names, "scenario", nil, "scenario to compare (repeatable; default all)")

	return cmd
}

func executeScenarios(cmd *cobra.Command, params measureParams) error {
	ctx := cmd.Context()

	if err := params.check(); err != nil {
		return err
	}
	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}

	scenarios := engine.Scenarios()
	if len(params.names) > 0 {
		scenarios = scenarios[:0:0]
		for _, name := range params.names {
			s, parseErr := engine.ParseScenario(name)
			if parseErr != nil {
				return parseErr
			}
			scenarios = append(scenarios, s)
		}
	}

	eng, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	outcomes, err := eng.CompareScenarios(params.tons, params.area, scenarios)
	if err != nil {
		return fmt.Errorf("comparing scenarios: %w", err)
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("operation", "scenarios").
		Int("scenario_count", len(outcomes)).
		Msg("scenarios compared")

	return engine.RenderScenarios(cmd.OutOrStdout(), format, outcomes)
}
