package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qaim-b/the-green-pulse/internal/config"
	"github.com/qaim-b/the-green-pulse/internal/engine"
	"github.com/qaim-b/the-green-pulse/internal/tui"
)

// addOutputFlag registers the per-command --output flag. An empty value
// falls back to output.default_format.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", "",
		"Output format: table, json, or ndjson (default from configuration)")
}

// resolveOutputFormat validates the --output value or the configured default.
func resolveOutputFormat(value string) (engine.OutputFormat, error) {
	if value == "" {
		value = config.GetDefaultOutputFormat()
	}
	return engine.ParseOutputFormat(value)
}

// styled reports whether table output should be drawn as lipgloss cards.
func styled(cmd *cobra.Command, format engine.OutputFormat) bool {
	if format != engine.OutputTable {
		return false
	}
	plain, _ := cmd.Flags().GetBool("plain")
	return tui.DetectOutputMode(plain) == tui.OutputModeStyled
}

// renderReport writes one assessment in the requested format.
func renderReport(cmd *cobra.Command, format engine.OutputFormat, r *engine.Report) error {
	if styled(cmd, format) {
		cmd.Println(tui.RenderAssessmentCard(r, tui.TerminalWidth()))
		return nil
	}
	if err := engine.RenderReport(cmd.OutOrStdout(), format, r); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// renderPortfolio writes a portfolio result in the requested format. Styled
// output puts the summary card above the plain item table.
func renderPortfolio(cmd *cobra.Command, format engine.OutputFormat, res *engine.PortfolioResult) error {
	if styled(cmd, format) {
		cmd.Println(tui.RenderPortfolioSummary(res, tui.TerminalWidth()))
	}
	if err := engine.RenderPortfolio(cmd.OutOrStdout(), format, res); err != nil {
		return fmt.Errorf("rendering portfolio: %w", err)
	}
	return nil
}
