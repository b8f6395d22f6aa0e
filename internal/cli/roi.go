package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/engine"
)

// measureParams are the inputs shared by roi and scenarios.
type measureParams struct {
	area   float64
	tons   float64
	names  []string
	output string
}

func addMeasureFlags(cmd *cobra.Command, params *measureParams) {
	cmd.Flags().Float64Var(&params.area, "area", 0, "gross floor area in sqft")
	cmd.Flags().Float64Var(&params.tons, "tons", 0, "current annual emissions in tons CO2")
	addOutputFlag(cmd, &params.output)
	_ = cmd.MarkFlagRequired("area")
	_ = cmd.MarkFlagRequired("tons")
}

func (p measureParams) check() error {
	if p.area <= 0 {
		return errors.New("--area must be > 0")
	}
	if p.tons < 0 {
		return errors.New("--tons must be >= 0")
	}
	return nil
}

// NewROICmd creates the roi command, which projects the return of each
// retrofit measure for one building.
func NewROICmd() *cobra.Command {
	var params measureParams

	cmd := &cobra.Command{
		Use:   "roi",
		Short: "Project cost, savings and return of retrofit measures",
		Long: `Projects initial cost, emissions cut, annual savings, payback and 5/10-year
ROI of each retrofit measure on a building of the given size and emissions.

Measures: Solar, Heat Pump, Insulation Upgrade, LED Retrofit, Envelope Sealing.`,
		Example: `  # All measures
  greenpulse roi --area 15000 --tons 87.2

  # Selected measures as JSON
  greenpulse roi --area 15000 --tons 87.2 --improvement Solar --improvement "LED Retrofit" -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeROI(cmd, params)
		},
	}

	addMeasureFlags(cmd, &params)
	cmd.Flags().StringArrayVar(&params.names, "improvement", nil, "measure to project (repeatable; default all)")

	return cmd
}

func executeROI(cmd *cobra.Command, params measureParams) error {
	if err := params.check(); err != nil {
		return err
	}
	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}

	improvements := certification.AllImprovements()
	if len(params.names) > 0 {
		improvements = improvements[:0:0]
		for _, name := range params.names {
			imp, parseErr := certification.ParseImprovement(name)
			if parseErr != nil {
				return parseErr
			}
			improvements = append(improvements, imp)
		}
	}

	rois := make([]certification.ImprovementROI, 0, len(improvements))
	for _, imp := range improvements {
		roi, projErr := certification.ProjectROI(imp, params.tons, params.area)
		if projErr != nil {
			return fmt.Errorf("projecting %s: %w", imp, projErr)
		}
		rois = append(rois, roi)
	}

	logger.Debug().Ctx(cmd.Context()).
		Str("operation", "roi").
		Int("measures", len(rois)).
		Msg("roi projected")

	return engine.RenderROI(cmd.OutOrStdout(), format, rois)
}
