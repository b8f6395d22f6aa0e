package certification

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

// Improvement names a retrofit measure with a financial model.
type Improvement string

// Improvements with a cost model.
const (
	ImprovementSolar      Improvement = "Solar"
	ImprovementHeatPump   Improvement = "Heat Pump"
	ImprovementInsulation Improvement = "Insulation Upgrade"
	ImprovementLED        Improvement = "LED Retrofit"
	ImprovementEnvelope   Improvement = "Envelope Sealing"
)

// costModel is the flat per-measure financial model.
type costModel struct {
	costPerSqft   float64
	reductionPct  float64
	paybackYears  float64
	savingsPerTon float64
}

//nolint:gochecknoglobals // Constant lookup table.
var costModels = map[Improvement]costModel{
	ImprovementSolar:      {costPerSqft: 8.5, reductionPct: 0.25, paybackYears: 6, savingsPerTon: 50},
	ImprovementHeatPump:   {costPerSqft: 12, reductionPct: 0.20, paybackYears: 4.5, savingsPerTon: 65},
	ImprovementInsulation: {costPerSqft: 3.5, reductionPct: 0.15, paybackYears: 3, savingsPerTon: 55},
	ImprovementLED:        {costPerSqft: 1.2, reductionPct: 0.08, paybackYears: 2, savingsPerTon: 45},
	ImprovementEnvelope:   {costPerSqft: 5.5, reductionPct: 0.18, paybackYears: 4, savingsPerTon: 58},
}

// AllImprovements lists every improvement with a cost model.
func AllImprovements() []Improvement {
	return []Improvement{
		ImprovementSolar, ImprovementHeatPump, ImprovementInsulation,
		ImprovementLED, ImprovementEnvelope,
	}
}

// ParseImprovement resolves a measure name, ignoring case. Unknown names
// return ErrNotApplicable.
func ParseImprovement(s string) (Improvement, error) {
	for _, imp := range AllImprovements() {
		if strings.EqualFold(strings.TrimSpace(s), string(imp)) {
			return imp, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotApplicable, s)
}

// ReductionShare returns the fractional emissions cut of imp.
func ReductionShare(imp Improvement) (float64, error) {
	m, ok := costModels[imp]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotApplicable, imp)
	}
	return m.reductionPct, nil
}

// ImprovementROI is the financial projection for one measure on one building.
type ImprovementROI struct {
	Improvement            Improvement     `json:"improvement"`
	CostPerSqft            float64         `json:"cost_per_sqft"`
	ReductionPct           float64         `json:"reduction_pct"`
	PaybackYears           float64         `json:"payback_years"`
	SavingsPerTon          float64         `json:"savings_per_ton"`
	InitialCost            decimal.Decimal `json:"initial_cost"`
	EmissionsReductionTons float64         `json:"emissions_reduction_tons"`
	AnnualSavings          decimal.Decimal `json:"annual_savings"`
	ROI5Pct                float64         `json:"roi_5yr_pct"`
	ROI10Pct               float64         `json:"roi_10yr_pct"`
}

// ProjectROI projects the cost, emissions cut and 5/10-year return of imp on
// a building emitting currentTons per year.
//
// An improvement without a cost model returns ErrNotApplicable; a zero
// initial cost returns ErrZeroInvestment.
func ProjectROI(imp Improvement, currentTons, areaSqft float64) (ImprovementROI, error) {
	m, ok := costModels[imp]
	if !ok {
		return ImprovementROI{}, fmt.Errorf("%w: %q", ErrNotApplicable, imp)
	}
	if math.IsNaN(currentTons) || math.IsInf(currentTons, 0) ||
		math.IsNaN(areaSqft) || math.IsInf(areaSqft, 0) || areaSqft < 0 {
		return ImprovementROI{}, fmt.Errorf("%w: tons %v, area %v", building.ErrInvalidInput, currentTons, areaSqft)
	}

	initial := decimal.NewFromFloat(areaSqft).Mul(decimal.NewFromFloat(m.costPerSqft))
	if initial.IsZero() {
		return ImprovementROI{}, fmt.Errorf("%w: %s on %v sqft", ErrZeroInvestment, imp, areaSqft)
	}

	reduction := currentTons * m.reductionPct
	savings := decimal.NewFromFloat(reduction).Mul(decimal.NewFromFloat(m.savingsPerTon))

	return ImprovementROI{
		Improvement:            imp,
		CostPerSqft:            m.costPerSqft,
		ReductionPct:           m.reductionPct * 100,
		PaybackYears:           m.paybackYears,
		SavingsPerTon:          m.savingsPerTon,
		InitialCost:            initial,
		EmissionsReductionTons: reduction,
		AnnualSavings:          savings,
		ROI5Pct:                roiPct(savings, initial, 5),
		ROI10Pct:               roiPct(savings, initial, 10),
	}, nil
}

// roiPct returns (savings*years - initial) / initial * 100.
func roiPct(annual, initial decimal.Decimal, years int64) float64 {
	net := annual.Mul(decimal.NewFromInt(years)).Sub(initial)
	return net.Div(initial).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
