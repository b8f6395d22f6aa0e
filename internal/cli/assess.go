package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/engine"
	"github.com/qaim-b/the-green-pulse/internal/ingest"
	"github.com/qaim-b/the-green-pulse/internal/logging"
)

// assessParams holds the flags of the assess command.
type assessParams struct {
	file       string
	output     string
	predicted  float64
	whatIf     bool
	name       string
	area       float64
	category   string
	hvac       string
	insulation string
	climate    string
	renewable  float64
	led        float64
	floors     int
	age        float64
	occupancy  int
	wwr        float64
}

// NewAssessCmd creates the assess command, which scores one building.
func NewAssessCmd() *cobra.Command {
	var params assessParams

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score one building against the certification ladder",
		Long: `Predicts annual CO2 emissions for a building, compares them with the
ASHRAE 90.1 baseline for its type and size, and reports earned LEED energy
credits, the performance rating, the intensity benchmark and ranked
recommendations with ROI.

The building comes from --file (YAML) or from the profile flags. Flags given
together with --file override the file's values. --predicted skips the model
and scores a known emissions figure.`,
		Example: assessExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeAssess(cmd, params)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&params.file, "file", "f", "", "YAML file describing the building")
	addOutputFlag(cmd, &params.output)
	f.Float64Var(&params.predicted, "predicted", 0, "known annual emissions in tons CO2 (skips the model)")
	f.BoolVar(&params.whatIf, "what-if", false, "show single-feature upgrades that lower emissions")
	f.StringVar(&params.name, "name", "", "building name")
	f.Float64Var(&params.area, "area", 0, "gross floor area in sqft")
	f.StringVar(&params.category, "type", "", "building type (Office, Retail, Healthcare, Educational, Warehouse, Multi-Family, Hotel)")
	f.StringVar(&params.hvac, "hvac", "", "HVAC system (Gas Furnace, Heat Pump, Electric Baseboard, Geothermal, District Steam, Packaged Rooftop)")
	f.StringVar(&params.insulation, "insulation", "", "insulation rating (Poor, Fair, Good, Excellent)")
	f.StringVar(&params.climate, "climate", "", "climate zone (Hot-Humid, Hot-Dry, Mixed-Humid, Cold, Very Cold, Marine)")
	f.Float64Var(&params.renewable, "renewable", 0, "on-site renewable share, 0-100")
	f.Float64Var(&params.led, "led", 0, "LED lighting share, 0-100")
	f.IntVar(&params.floors, "floors", 0, "number of floors")
	f.Float64Var(&params.age, "age", 0, "building age in years")
	f.IntVar(&params.occupancy, "occupancy", 0, "typical occupant count")
	f.Float64Var(&params.wwr, "window-wall-ratio", 0, "window-to-wall ratio, 0-0.5")

	return cmd
}

const assessExample = `  # Assess from flags with the reference model
  greenpulse assess --name "HQ Tower" --area 15000 --type Office \
    --hvac "Gas Furnace" --insulation Good --climate Mixed-Humid \
    --renewable 20 --led 50

  # Score a known emissions figure
  greenpulse assess --file hq.yaml --predicted 87.2

  # Include what-if upgrades, as JSON
  greenpulse assess --file hq.yaml --what-if --output json`

// executeAssess builds the profile, runs the assessment and renders it.
func executeAssess(cmd *cobra.Command, params assessParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}

	profile, predicted, err := buildProfile(cmd.Flags(), params)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	var report *engine.Report
	if predicted != nil {
		report, err = eng.AssessWithPrediction(ctx, profile, *predicted)
	} else {
		report, err = eng.AssessBuilding(ctx, profile)
	}
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("operation", "assess").Msg("assessment failed")
		return fmt.Errorf("assessing building: %w", err)
	}

	if err = renderReport(cmd, format, report); err != nil {
		return err
	}

	if params.whatIf {
		res, whatIfErr := eng.WhatIf(ctx, report.Profile)
		if whatIfErr != nil {
			return fmt.Errorf("what-if analysis: %w", whatIfErr)
		}
		if format == engine.OutputTable {
			cmd.Println()
		}
		if err = engine.RenderWhatIf(cmd.OutOrStdout(), format, res); err != nil {
			return fmt.Errorf("rendering what-if: %w", err)
		}
	}

	log.Info().Ctx(ctx).
		Str("operation", "assess").
		Str("building", report.Name).
		Int("credits", report.Assessment.EarnedCredits).
		Dur("duration_ms", time.Since(start)).
		Msg("assessment complete")
	return nil
}

// buildProfile starts from --file when given and applies every explicitly
// set profile flag on top. A file's predicted_tons is used unless
// --predicted is set.
func buildProfile(flags *pflag.FlagSet, params assessParams) (building.Profile, *float64, error) {
	var p building.Profile
	var predicted *float64

	if params.file != "" {
		var err error
		if p, predicted, err = ingest.LoadBuilding(params.file); err != nil {
			return building.Profile{}, nil, err
		}
	} else {
		for _, required := range []string{"area", "type", "hvac", "insulation", "climate"} {
			if !flags.Changed(required) {
				return building.Profile{}, nil, fmt.Errorf("--%s is required without --file", required)
			}
		}
	}

	if err := applyProfileFlags(flags, params, &p); err != nil {
		return building.Profile{}, nil, err
	}

	if flags.Changed("predicted") {
		if params.predicted < 0 {
			return building.Profile{}, nil, errors.New("--predicted must be >= 0")
		}
		v := params.predicted
		predicted = &v
	}
	return p, predicted, nil
}

func applyProfileFlags(flags *pflag.FlagSet, params assessParams, p *building.Profile) error {
	if flags.Changed("name") {
		p.Name = params.name
	}
	if flags.Changed("area") {
		p.FloorAreaSqft = params.area
	}
	if flags.Changed("renewable") {
		p.RenewablePct = params.renewable
	}
	if flags.Changed("led") {
		p.LEDPct = params.led
	}
	if flags.Changed("floors") {
		p.Floors = params.floors
	}
	if flags.Changed("age") {
		p.AgeYears = params.age
	}
	if flags.Changed("occupancy") {
		p.Occupancy = params.occupancy
	}
	if flags.Changed("window-wall-ratio") {
		p.WindowWallRatio = params.wwr
	}

	var err error
	if flags.Changed("type") {
		if p.Category, err = building.ParseCategory(params.category); err != nil {
			return err
		}
	}
	if flags.Changed("hvac") {
		if p.HVAC, err = building.ParseHVACType(params.hvac); err != nil {
			return err
		}
	}
	if flags.Changed("insulation") {
		if p.Insulation, err = building.ParseInsulation(params.insulation); err != nil {
			return err
		}
	}
	if flags.Changed("climate") {
		if p.Climate, err = building.ParseClimateZone(params.climate); err != nil {
			return err
		}
	}
	return nil
}
