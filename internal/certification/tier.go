package certification

import (
	"fmt"
	"math"
)

// thresholdTolerance absorbs float rounding when a prediction lands exactly
// on a tier edge, so predicted == baseline*(1-t/100) always earns tier t.
const thresholdTolerance = 1e-9

// Tier is one rung of the credit ladder: meeting ThresholdPct percent
// improvement over baseline earns Points.
type Tier struct {
	Points       int     `json:"points"        yaml:"points"`
	ThresholdPct float64 `json:"threshold_pct" yaml:"threshold_pct"`
}

// TierTable is an ordered credit ladder, strictly increasing in both points
// and threshold. Build one with NewTierTable or DefaultTierTable.
type TierTable struct {
	tiers []Tier
}

// DefaultTiers returns the LEED v4.1 EA Optimize Energy Performance ladder.
func DefaultTiers() []Tier {
	return []Tier{
		{Points: 1, ThresholdPct: 2},
		{Points: 2, ThresholdPct: 4},
		{Points: 3, ThresholdPct: 6},
		{Points: 5, ThresholdPct: 10},
		{Points: 7, ThresholdPct: 14},
		{Points: 9, ThresholdPct: 18},
		{Points: 11, ThresholdPct: 22},
		{Points: 13, ThresholdPct: 26},
		{Points: 15, ThresholdPct: 30},
		{Points: 17, ThresholdPct: 34},
		{Points: 18, ThresholdPct: 36},
	}
}

// DefaultTierTable returns the validated LEED v4.1 ladder.
func DefaultTierTable() TierTable {
	return TierTable{tiers: DefaultTiers()}
}

// NewTierTable validates tiers and returns a TierTable holding a copy.
func NewTierTable(tiers []Tier) (TierTable, error) {
	if len(tiers) == 0 {
		return TierTable{}, fmt.Errorf("%w: no tiers", ErrInvalidTierTable)
	}
	for i, t := range tiers {
		if t.Points <= 0 {
			return TierTable{}, fmt.Errorf("%w: tier %d has %d points", ErrInvalidTierTable, i, t.Points)
		}
		if math.IsNaN(t.ThresholdPct) || t.ThresholdPct <= 0 || t.ThresholdPct > 100 {
			return TierTable{}, fmt.Errorf("%w: tier %d threshold %v outside (0, 100]",
				ErrInvalidTierTable, i, t.ThresholdPct)
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if t.Points <= prev.Points || t.ThresholdPct <= prev.ThresholdPct {
			return TierTable{}, fmt.Errorf("%w: tier %d (%d pts @ %v%%) does not increase on tier %d (%d pts @ %v%%)",
				ErrInvalidTierTable, i, t.Points, t.ThresholdPct, i-1, prev.Points, prev.ThresholdPct)
		}
	}
	copied := make([]Tier, len(tiers))
	copy(copied, tiers)
	return TierTable{tiers: copied}, nil
}

// Tiers returns a copy of the ladder.
func (t TierTable) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// MaxCredits is the point value of the top tier.
func (t TierTable) MaxCredits() int {
	if len(t.tiers) == 0 {
		return 0
	}
	return t.tiers[len(t.tiers)-1].Points
}

// MinCredits is the point value of the first tier, the certification floor.
func (t TierTable) MinCredits() int {
	if len(t.tiers) == 0 {
		return 0
	}
	return t.tiers[0].Points
}

// NextTier describes the closest unmet tier and the emissions cut needed to reach it.
type NextTier struct {
	Points        int     `json:"points"`
	ThresholdPct  float64 `json:"threshold_pct"`
	ReductionTons float64 `json:"reduction_tons"`
}

// TierResult is the outcome of evaluating a prediction against the ladder.
type TierResult struct {
	// ImprovementPct is (baseline - predicted) / baseline * 100, unrounded.
	// Negative when the building emits more than the baseline.
	ImprovementPct        float64   `json:"improvement_pct"`
	EarnedCredits         int       `json:"earned_credits"`
	MaxCredits            int       `json:"max_credits"`
	CertificationEligible bool      `json:"certification_eligible"`
	Next                  *NextTier `json:"next_tier,omitempty"`
}

// Evaluate scores predicted against baseline. Thresholds are inclusive: an
// improvement equal to a tier's threshold earns that tier, and so does one
// up to thresholdTolerance (1e-9 percentage points) below it. Next is nil
// once the top tier is met.
func (t TierTable) Evaluate(predicted, baseline float64) (TierResult, error) {
	if len(t.tiers) == 0 {
		return TierResult{}, fmt.Errorf("%w: no tiers", ErrInvalidTierTable)
	}
	if math.IsNaN(baseline) || baseline <= 0 {
		return TierResult{}, fmt.Errorf("%w: baseline %v", ErrDegenerateBaseline, baseline)
	}
	if math.IsNaN(predicted) || math.IsInf(predicted, 0) || math.IsInf(baseline, 0) {
		return TierResult{}, fmt.Errorf("%w: predicted %v, baseline %v",
			ErrDegenerateBaseline, predicted, baseline)
	}

	improvement := (baseline - predicted) * 100 / baseline

	result := TierResult{
		ImprovementPct: improvement,
		MaxCredits:     t.MaxCredits(),
	}

	for _, tier := range t.tiers {
		if !meets(improvement, tier.ThresholdPct) {
			result.Next = &NextTier{
				Points:        tier.Points,
				ThresholdPct:  tier.ThresholdPct,
				ReductionTons: math.Max(0, predicted-baseline*(1-tier.ThresholdPct/100)),
			}
			break
		}
		result.EarnedCredits = tier.Points
	}

	result.CertificationEligible = result.EarnedCredits >= t.MinCredits()
	return result, nil
}

func meets(improvement, threshold float64) bool {
	return improvement >= threshold-thresholdTolerance
}
