package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/qaim-b/the-green-pulse/internal/engine/batch"
	"github.com/qaim-b/the-green-pulse/internal/ingest"
	"github.com/qaim-b/the-green-pulse/internal/logging"
)

// ExitCodePartialFailure is returned when some portfolio buildings failed.
const ExitCodePartialFailure = 2

// ExitError carries a process exit code alongside its message.
type ExitError struct {
	ExitCode int
	Reason   string
}

func (e *ExitError) Error() string {
	return e.Reason
}

// NewPortfolioCmd creates the portfolio command, which assesses every
// building in a CSV or YAML file.
func NewPortfolioCmd() *cobra.Command {
	var (
		output     string
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "portfolio <file>",
		Short: "Assess every building in a CSV or YAML portfolio",
		Long: `Assesses each building of a portfolio file with bounded concurrency and
prints per-building results plus a portfolio summary.

A row that fails to parse or validate is reported in place and never stops
the others. The command exits with code 2 when any building failed.

Rows carrying predicted_tons are scored directly; the rest go through the
model. Run 'greenpulse portfolio template' for the CSV header.`,
		Example: portfolioExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePortfolio(cmd, args[0], output, noProgress)
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not print batch progress to stderr")
	cmd.AddCommand(newPortfolioTemplateCmd())

	return cmd
}

const portfolioExample = `  # Assess a CSV portfolio
  greenpulse portfolio buildings.csv

  # Stream one JSON object per building
  greenpulse portfolio buildings.yaml --output ndjson

  # Write an empty CSV template
  greenpulse portfolio template > buildings.csv`

func newPortfolioTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the CSV portfolio header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ingest.WriteTemplate(cmd.OutOrStdout())
		},
	}
}

// progressLine formats one batch progress update for stderr.
func progressLine(s batch.ProgressSnapshot) string {
	line := fmt.Sprintf("Assessed %d/%d buildings (%.0f%%, %d failed)",
		s.ProcessedItems, s.TotalItems, s.PercentComplete, s.FailedItems)
	if s.IsComplete() {
		return line + " in " + s.ElapsedTime.Round(time.Millisecond).String()
	}
	return line + ", ~" + s.EstimatedTimeRemaining().Round(time.Second).String() + " left"
}

// executePortfolio loads, assesses and renders a portfolio.
func executePortfolio(cmd *cobra.Command, path, output string, noProgress bool) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	format, err := resolveOutputFormat(output)
	if err != nil {
		return err
	}

	entries, err := ingest.LoadPortfolio(ctx, path)
	if err != nil {
		return fmt.Errorf("loading portfolio: %w", err)
	}

	eng, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	var onProgress batch.ProgressCallback
	if !noProgress && isTerminal(os.Stderr) {
		onProgress = func(s batch.ProgressSnapshot) {
			cmd.PrintErrln(progressLine(s))
		}
	}

	result, runErr := eng.AssessPortfolio(ctx, entries, onProgress)
	if result == nil {
		return fmt.Errorf("assessing portfolio: %w", runErr)
	}

	if err = renderPortfolio(cmd, format, result); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("portfolio assessment interrupted: %w", runErr)
	}

	log.Info().Ctx(ctx).
		Str("operation", "portfolio").
		Str("run_id", result.Summary.RunID).
		Int("assessed", result.Summary.Assessed).
		Int("failed", result.Summary.Failed).
		Dur("duration_ms", time.Since(start)).
		Msg("portfolio complete")

	if result.Summary.Failed > 0 {
		return &ExitError{
			ExitCode: ExitCodePartialFailure,
			Reason: fmt.Sprintf("%d of %d buildings failed:\n%v",
				result.Summary.Failed, result.Summary.Buildings, result.Err()),
		}
	}
	return nil
}
