package certification

import (
	"fmt"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

// Assessment is the full scoring result for one building. It is built fresh
// on every call and owned by the caller.
type Assessment struct {
	BaselineTons          float64          `json:"baseline_tons"`
	PredictedTons         float64          `json:"predicted_tons"`
	ImprovementPct        float64          `json:"improvement_pct"`
	EarnedCredits         int              `json:"earned_credits"`
	MaxCredits            int              `json:"max_credits"`
	NextTier              *NextTier        `json:"next_tier,omitempty"`
	CertificationEligible bool             `json:"certification_eligible"`
	Rating                Rating           `json:"rating"`
	Benchmark             BenchmarkResult  `json:"benchmark"`
	Recommendations       []Recommendation `json:"recommendations"`
}

// OutstandingTons is the reduction still needed for the next tier, 0 at the top.
func (a Assessment) OutstandingTons() float64 {
	if a.NextTier == nil {
		return 0
	}
	return a.NextTier.ReductionTons
}

// Assessor composes baseline, tier, rating, recommendation and ROI steps.
// It is immutable after construction and safe for concurrent use.
type Assessor struct {
	tiers TierTable
}

// Option configures an Assessor.
type Option func(*Assessor)

// WithTierTable replaces the default LEED ladder.
func WithTierTable(t TierTable) Option {
	return func(a *Assessor) {
		a.tiers = t
	}
}

// NewAssessor builds an Assessor and verifies every category-keyed table is
// complete, so a missing entry fails at startup instead of mid-assessment.
func NewAssessor(opts ...Option) (*Assessor, error) {
	a := &Assessor{tiers: DefaultTierTable()}
	for _, opt := range opts {
		opt(a)
	}
	if len(a.tiers.tiers) == 0 {
		return nil, fmt.Errorf("%w: no tiers", ErrInvalidTierTable)
	}
	if err := checkCategoryTable("baseline EUI", baselineEUI); err != nil {
		return nil, err
	}
	if err := checkCategoryTable("intensity benchmark", intensityRanges); err != nil {
		return nil, err
	}
	for _, r := range rules {
		if _, ok := costModels[r.improvement]; !ok {
			return nil, fmt.Errorf("%w: no cost model for %s", ErrIncompleteTable, r.improvement)
		}
	}
	return a, nil
}

// Tiers returns the ladder this Assessor scores against.
func (a *Assessor) Tiers() TierTable {
	return a.tiers
}

// Assess scores predicted emissions (tons CO2/yr) for a building of the given
// area and category, then ranks recommendations from features.
//
// A recommendation whose measure has no cost model keeps a nil ROI; any
// other ROI failure fails the assessment.
func (a *Assessor) Assess(predicted, areaSqft float64, c building.Category, f building.Features) (Assessment, error) {
	baseline, err := EstimateBaseline(areaSqft, c)
	if err != nil {
		return Assessment{}, fmt.Errorf("estimating baseline: %w", err)
	}

	tier, err := a.tiers.Evaluate(predicted, baseline)
	if err != nil {
		return Assessment{}, fmt.Errorf("evaluating tiers: %w", err)
	}

	intensity, err := Intensity(predicted, areaSqft)
	if err != nil {
		return Assessment{}, err
	}
	bench, err := Benchmark(c, intensity)
	if err != nil {
		return Assessment{}, err
	}

	result := Assessment{
		BaselineTons:          baseline,
		PredictedTons:         predicted,
		ImprovementPct:        tier.ImprovementPct,
		EarnedCredits:         tier.EarnedCredits,
		MaxCredits:            tier.MaxCredits,
		NextTier:              tier.Next,
		CertificationEligible: tier.CertificationEligible,
		Rating:                Classify(tier.EarnedCredits),
		Benchmark:             bench,
	}

	recs := Generate(f, result.OutstandingTons())
	for i := range recs {
		roi, roiErr := ProjectROI(recs[i].Improvement, predicted, areaSqft)
		if IsNotApplicable(roiErr) {
			continue
		}
		if roiErr != nil {
			return Assessment{}, fmt.Errorf("projecting %s: %w", recs[i].Improvement, roiErr)
		}
		recs[i].ROI = &roi
	}
	result.Recommendations = recs

	return result, nil
}

// AssessProfile is Assess over a validated building profile.
func (a *Assessor) AssessProfile(p building.Profile, predicted float64) (Assessment, error) {
	return a.Assess(predicted, p.FloorAreaSqft, p.Category, p.Features())
}
