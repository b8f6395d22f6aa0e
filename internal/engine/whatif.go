package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/logging"
)

// whatIfRenewableTarget is the renewable share tried for buildings below it.
const whatIfRenewableTarget = 50.0

// WhatIfOption is one single-feature change re-run through the predictor.
type WhatIfOption struct {
	Action      string                        `json:"action"`
	Improvement certification.Improvement     `json:"improvement"`
	NewTons     float64                       `json:"new_tons"`
	SavingsTons float64                       `json:"savings_tons"`
	SavingsPct  float64                       `json:"savings_pct"`
	ROI         *certification.ImprovementROI `json:"roi,omitempty"`
}

// WhatIfResult lists the changes that lower emissions, largest saving first.
type WhatIfResult struct {
	Name        string         `json:"name"`
	CurrentTons float64        `json:"current_tons"`
	Options     []WhatIfOption `json:"options"`
}

// whatIfChange mutates a profile copy; ok is false when the change does not
// apply to the building as it stands.
type whatIfChange struct {
	action      string
	improvement certification.Improvement
	apply       func(p *building.Profile) (ok bool)
}

//nolint:gochecknoglobals // Constant lookup table.
var whatIfChanges = []whatIfChange{
	{
		action:      "Increase renewable energy to 50%",
		improvement: certification.ImprovementSolar,
		apply: func(p *building.Profile) bool {
			if p.RenewablePct >= whatIfRenewableTarget {
				return false
			}
			p.RenewablePct = whatIfRenewableTarget
			return true
		},
	},
	{
		action:      "Upgrade insulation to Excellent",
		improvement: certification.ImprovementInsulation,
		apply: func(p *building.Profile) bool {
			if p.Insulation == building.InsulationExcellent {
				return false
			}
			p.Insulation = building.InsulationExcellent
			return true
		},
	},
	{
		action:      "Install geothermal HVAC system",
		improvement: certification.ImprovementHeatPump,
		apply: func(p *building.Profile) bool {
			if p.HVAC == building.HVACGeothermal {
				return false
			}
			p.HVAC = building.HVACGeothermal
			return true
		},
	},
}

// WhatIf predicts p as-is and with each single-feature upgrade applied. Only
// upgrades with positive savings are kept, sorted by savings descending,
// each with the ROI of its matching measure.
func (e *Engine) WhatIf(ctx context.Context, p building.Profile) (*WhatIfResult, error) {
	p, err := building.NewProfile(p)
	if err != nil {
		return nil, err
	}

	current, err := e.predictor.Predict(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("predicting emissions: %w", err)
	}

	result := &WhatIfResult{Name: p.DisplayName(), CurrentTons: current, Options: []WhatIfOption{}}
	for _, change := range whatIfChanges {
		modified := p
		if !change.apply(&modified) {
			continue
		}
		tons, predErr := e.predictor.Predict(ctx, modified)
		if predErr != nil {
			return nil, fmt.Errorf("predicting %q: %w", change.action, predErr)
		}
		savings := current - tons
		if savings <= 0 {
			continue
		}

		opt := WhatIfOption{
			Action:      change.action,
			Improvement: change.improvement,
			NewTons:     tons,
			SavingsTons: savings,
			SavingsPct:  savings / current * 100,
		}
		roi, roiErr := certification.ProjectROI(change.improvement, current, p.FloorAreaSqft)
		switch {
		case roiErr == nil:
			opt.ROI = &roi
		case !certification.IsNotApplicable(roiErr):
			return nil, fmt.Errorf("projecting %q: %w", change.action, roiErr)
		}
		result.Options = append(result.Options, opt)
	}

	sort.SliceStable(result.Options, func(i, j int) bool {
		return result.Options[i].SavingsTons > result.Options[j].SavingsTons
	})

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "what_if").
		Str("building", result.Name).
		Int("options", len(result.Options)).
		Msg("what-if analysis complete")

	return result, nil
}
