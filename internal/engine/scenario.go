package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/certification"
)

// roiHorizonYears is the horizon of the scenario ROI figure.
const roiHorizonYears = 10

// Scenario is a named retrofit package. ReductionShare is the combined cut
// for the whole package, which is not the sum of its measures.
type Scenario struct {
	Name           string                      `json:"name"`
	ReductionShare float64                     `json:"reduction_share"`
	Improvements   []certification.Improvement `json:"improvements"`
}

// Scenarios returns the built-in scenarios: each single measure, then the
// combined packages.
func Scenarios() []Scenario {
	singles := []certification.Improvement{
		certification.ImprovementSolar,
		certification.ImprovementHeatPump,
		certification.ImprovementInsulation,
		certification.ImprovementLED,
	}
	out := make([]Scenario, 0, len(singles)+3)
	for _, imp := range singles {
		share, _ := certification.ReductionShare(imp)
		out = append(out, Scenario{
			Name:           string(imp),
			ReductionShare: share,
			Improvements:   []certification.Improvement{imp},
		})
	}
	return append(out,
		Scenario{
			Name:           "Solar + Heat Pump",
			ReductionShare: 0.45,
			Improvements:   []certification.Improvement{certification.ImprovementSolar, certification.ImprovementHeatPump},
		},
		Scenario{
			Name:           "Heat Pump + Insulation",
			ReductionShare: 0.35,
			Improvements:   []certification.Improvement{certification.ImprovementHeatPump, certification.ImprovementInsulation},
		},
		Scenario{
			Name:           "Full Package",
			ReductionShare: 0.86,
			Improvements:   certification.AllImprovements(),
		},
	)
}

// ParseScenario looks up a built-in scenario by name, ignoring case.
func ParseScenario(name string) (Scenario, error) {
	for _, s := range Scenarios() {
		if strings.EqualFold(strings.TrimSpace(name), s.Name) {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: unknown scenario %q", certification.ErrNotApplicable, name)
}

// ScenarioOutcome is the projected effect of one scenario on one building.
type ScenarioOutcome struct {
	Scenario         string          `json:"scenario"`
	ReductionPct     float64         `json:"reduction_pct"`
	NewEmissionsTons float64         `json:"new_emissions_tons"`
	ReductionTons    float64         `json:"reduction_tons"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	AnnualSavings    decimal.Decimal `json:"annual_savings"`
	PaybackYears     *float64        `json:"payback_years,omitempty"`
	ROI10Pct         float64         `json:"roi_10yr_pct"`
	CreditBoost      int             `json:"credit_boost"`
}

// CompareScenarios projects each scenario for a building emitting
// currentTons per year. Costs and savings are summed over the package's
// measures, each priced on the full current emissions. The credit boost is
// the reduction share of the maximum credits, rounded down.
func (e *Engine) CompareScenarios(currentTons, areaSqft float64, scenarios []Scenario) ([]ScenarioOutcome, error) {
	if math.IsNaN(currentTons) || math.IsInf(currentTons, 0) || currentTons < 0 {
		return nil, fmt.Errorf("%w: current emissions %v", building.ErrInvalidInput, currentTons)
	}
	if math.IsNaN(areaSqft) || math.IsInf(areaSqft, 0) || areaSqft <= 0 {
		return nil, fmt.Errorf("%w: floor area must be > 0, got %v", building.ErrInvalidInput, areaSqft)
	}
	maxCredits := e.assessor.Tiers().MaxCredits()

	out := make([]ScenarioOutcome, 0, len(scenarios))
	for _, sc := range scenarios {
		newTons := currentTons * (1 - sc.ReductionShare)
		o := ScenarioOutcome{
			Scenario:         sc.Name,
			ReductionPct:     sc.ReductionShare * 100,
			NewEmissionsTons: newTons,
			ReductionTons:    currentTons - newTons,
			TotalCost:        decimal.Zero,
			AnnualSavings:    decimal.Zero,
			CreditBoost:      int(math.Floor(sc.ReductionShare * float64(maxCredits))),
		}

		for _, imp := range sc.Improvements {
			roi, err := certification.ProjectROI(imp, currentTons, areaSqft)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			o.TotalCost = o.TotalCost.Add(roi.InitialCost)
			o.AnnualSavings = o.AnnualSavings.Add(roi.AnnualSavings)
		}

		if o.AnnualSavings.IsPositive() {
			payback := o.TotalCost.Div(o.AnnualSavings).InexactFloat64()
			o.PaybackYears = &payback
		}
		if o.TotalCost.IsPositive() {
			net := o.AnnualSavings.Mul(decimal.NewFromInt(roiHorizonYears)).Sub(o.TotalCost)
			o.ROI10Pct = net.Div(o.TotalCost).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		out = append(out, o)
	}
	return out, nil
}
