package certification

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

func inefficientFeatures() building.Features {
	return building.Features{
		RenewablePct: 10,
		HVAC:         building.HVACGasFurnace,
		Insulation:   building.InsulationFair,
		LEDPct:       60,
	}
}

func TestEstimateBaseline(t *testing.T) {
	got, err := EstimateBaseline(15000, building.CategoryOffice)
	require.NoError(t, err)
	assert.InDelta(t, 126.15, got, 1e-9)

	got, err = EstimateBaseline(10000, building.CategoryHealthcare)
	require.NoError(t, err)
	assert.InDelta(t, 311.75, got, 1e-9)

	for _, area := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = EstimateBaseline(area, building.CategoryOffice)
		require.ErrorIs(t, err, building.ErrInvalidInput, "area %v", area)
	}

	_, err = EstimateBaseline(1000, building.Category(77))
	require.ErrorIs(t, err, building.ErrUnknownCategory)
}

func TestEstimateBaseline_StrictlyIncreasingInArea(t *testing.T) {
	for _, c := range building.AllCategories() {
		prev := 0.0
		for area := 500.0; area <= 500000; area *= 1.7 {
			got, err := EstimateBaseline(area, c)
			require.NoError(t, err)
			assert.Greater(t, got, prev, "%s at %v sqft", c, area)
			prev = got
		}
	}
}

func TestGenerate(t *testing.T) {
	recs := Generate(inefficientFeatures(), 30)
	require.Len(t, recs, 4)

	wantTons := []float64{9.0, 7.5, 6.0, 3.0}
	wantCategory := []string{"Renewable Energy", "HVAC Efficiency", "Building Envelope", "Lighting Systems"}
	for i, rec := range recs {
		assert.InDelta(t, wantTons[i], rec.ImpactTons, 1e-9)
		assert.Equal(t, wantCategory[i], rec.Category)
		assert.NotEmpty(t, rec.Action)
		assert.NotEmpty(t, rec.CreditReference)
		assert.NotEmpty(t, rec.CostConsideration)
	}
	assert.Equal(t, ImprovementSolar, recs[0].Improvement)
	assert.Equal(t, ImprovementLED, recs[3].Improvement)
}

func TestGenerate_Conditions(t *testing.T) {
	tests := []struct {
		name     string
		features building.Features
		want     []string
	}{
		{
			name: "efficient building",
			features: building.Features{
				RenewablePct: 30, HVAC: building.HVACGeothermal,
				Insulation: building.InsulationGood, LEDPct: 90,
			},
			want: []string{},
		},
		{
			name: "baseboard heat only",
			features: building.Features{
				RenewablePct: 45, HVAC: building.HVACElectricBaseboard,
				Insulation: building.InsulationExcellent, LEDPct: 100,
			},
			want: []string{"HVAC Efficiency"},
		},
		{
			name: "poor envelope and lighting",
			features: building.Features{
				RenewablePct: 80, HVAC: building.HVACHeatPump,
				Insulation: building.InsulationPoor, LEDPct: 89.9,
			},
			want: []string{"Building Envelope", "Lighting Systems"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Generate(tt.features, 10)
			got := make([]string, 0, len(recs))
			for _, r := range recs {
				got = append(got, r.Category)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_ZeroOutstandingKeepsRuleOrder(t *testing.T) {
	recs := Generate(inefficientFeatures(), 0)
	require.Len(t, recs, 4)
	assert.Equal(t, "Renewable Energy", recs[0].Category)
	assert.Equal(t, "Lighting Systems", recs[3].Category)
	for _, r := range recs {
		assert.Zero(t, r.ImpactTons)
	}
}

func TestProjectROI(t *testing.T) {
	got, err := ProjectROI(ImprovementSolar, 100, 10000)
	require.NoError(t, err)

	assert.True(t, got.InitialCost.Equal(decimal.NewFromInt(85000)), got.InitialCost.String())
	assert.True(t, got.AnnualSavings.Equal(decimal.NewFromInt(1250)), got.AnnualSavings.String())
	assert.InDelta(t, 25.0, got.EmissionsReductionTons, 1e-9)
	assert.InDelta(t, 25.0, got.ReductionPct, 1e-9)
	assert.InDelta(t, 6.0, got.PaybackYears, 0)
	assert.InDelta(t, (6250.0-85000)/85000*100, got.ROI5Pct, 1e-6)
	assert.InDelta(t, (12500.0-85000)/85000*100, got.ROI10Pct, 1e-6)
}

func TestProjectROI_TenYearBeatsFiveYear(t *testing.T) {
	for _, imp := range AllImprovements() {
		got, err := ProjectROI(imp, 250, 20000)
		require.NoError(t, err)
		require.True(t, got.AnnualSavings.IsPositive())
		assert.Greater(t, got.ROI10Pct, got.ROI5Pct, "improvement %s", imp)
	}
}

func TestProjectROI_Errors(t *testing.T) {
	_, err := ProjectROI(Improvement("Wind Turbine"), 100, 1000)
	require.ErrorIs(t, err, ErrNotApplicable)
	assert.True(t, IsNotApplicable(err))

	_, err = ProjectROI(ImprovementLED, 100, 0)
	require.ErrorIs(t, err, ErrZeroInvestment)
	assert.False(t, IsNotApplicable(err))

	_, err = ProjectROI(ImprovementLED, math.NaN(), 1000)
	require.ErrorIs(t, err, building.ErrInvalidInput)
}

func TestParseImprovement(t *testing.T) {
	got, err := ParseImprovement("heat pump")
	require.NoError(t, err)
	assert.Equal(t, ImprovementHeatPump, got)

	_, err = ParseImprovement("Green Roof")
	require.ErrorIs(t, err, ErrNotApplicable)
}

func TestBenchmark(t *testing.T) {
	tests := []struct {
		category  building.Category
		intensity float64
		want      BenchmarkStatus
	}{
		{category: building.CategoryOffice, intensity: 2.9, want: BenchmarkExcellent},
		{category: building.CategoryOffice, intensity: 3, want: BenchmarkTypical},
		{category: building.CategoryOffice, intensity: 8, want: BenchmarkTypical},
		{category: building.CategoryOffice, intensity: 8.1, want: BenchmarkHigh},
		{category: building.CategoryWarehouse, intensity: 1.4, want: BenchmarkExcellent},
		{category: building.CategoryHealthcare, intensity: 25, want: BenchmarkHigh},
	}
	for _, tt := range tests {
		got, err := Benchmark(tt.category, tt.intensity)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Status, "%s at %v", tt.category, tt.intensity)
	}

	_, err := Benchmark(building.Category(-3), 5)
	require.ErrorIs(t, err, building.ErrUnknownCategory)
}

func TestNewAssessor(t *testing.T) {
	a, err := NewAssessor()
	require.NoError(t, err)
	assert.Equal(t, 18, a.Tiers().MaxCredits())

	custom, err := NewTierTable([]Tier{{Points: 1, ThresholdPct: 5}, {Points: 4, ThresholdPct: 20}})
	require.NoError(t, err)
	a, err = NewAssessor(WithTierTable(custom))
	require.NoError(t, err)
	assert.Equal(t, 4, a.Tiers().MaxCredits())

	_, err = NewAssessor(WithTierTable(TierTable{}))
	require.ErrorIs(t, err, ErrInvalidTierTable)
}

func TestCategoryTablesAreComplete(t *testing.T) {
	require.NoError(t, checkCategoryTable("baseline EUI", baselineEUI))
	require.NoError(t, checkCategoryTable("intensity benchmark", intensityRanges))

	partial := map[building.Category]float64{building.CategoryOffice: 1}
	require.ErrorIs(t, checkCategoryTable("partial", partial), ErrIncompleteTable)
}

func TestAssessor_Assess_OfficeScenario(t *testing.T) {
	a, err := NewAssessor()
	require.NoError(t, err)

	got, err := a.Assess(87.2, 15000, building.CategoryOffice, inefficientFeatures())
	require.NoError(t, err)

	assert.InDelta(t, 126.15, got.BaselineTons, 1e-9)
	assert.InDelta(t, 30.876, got.ImprovementPct, 0.001)
	assert.Equal(t, 15, got.EarnedCredits)
	assert.Equal(t, 18, got.MaxCredits)
	assert.True(t, got.CertificationEligible)
	assert.Equal(t, RatingExceptional, got.Rating)
	require.NotNil(t, got.NextTier)
	assert.Equal(t, 17, got.NextTier.Points)
	assert.InDelta(t, 3.941, got.OutstandingTons(), 0.001)

	assert.InDelta(t, 87.2*1000/15000, got.Benchmark.IntensityKgPerSqft, 1e-9)
	assert.Equal(t, BenchmarkTypical, got.Benchmark.Status)

	require.Len(t, got.Recommendations, 4)
	for i := 1; i < len(got.Recommendations); i++ {
		assert.GreaterOrEqual(t, got.Recommendations[i-1].ImpactTons, got.Recommendations[i].ImpactTons)
	}
	for _, rec := range got.Recommendations {
		require.NotNil(t, rec.ROI, rec.Category)
		assert.Equal(t, rec.Improvement, rec.ROI.Improvement)
	}
}

func TestAssessor_Assess_BelowBaseline(t *testing.T) {
	a, err := NewAssessor()
	require.NoError(t, err)

	got, err := a.Assess(140, 15000, building.CategoryOffice, inefficientFeatures())
	require.NoError(t, err)
	assert.Less(t, got.ImprovementPct, 0.0)
	assert.Equal(t, 0, got.EarnedCredits)
	assert.False(t, got.CertificationEligible)
	assert.Equal(t, RatingBelowBaseline, got.Rating)
}

func TestAssessor_Assess_TopTierHasNoOutstanding(t *testing.T) {
	a, err := NewAssessor()
	require.NoError(t, err)

	got, err := a.Assess(10, 15000, building.CategoryOffice, inefficientFeatures())
	require.NoError(t, err)
	assert.Nil(t, got.NextTier)
	assert.Zero(t, got.OutstandingTons())
	for _, rec := range got.Recommendations {
		assert.Zero(t, rec.ImpactTons)
	}
}

func TestAssessor_Assess_Errors(t *testing.T) {
	a, err := NewAssessor()
	require.NoError(t, err)

	_, err = a.Assess(50, 0, building.CategoryOffice, inefficientFeatures())
	require.ErrorIs(t, err, building.ErrInvalidInput)

	_, err = a.Assess(50, 1000, building.Category(12), inefficientFeatures())
	require.ErrorIs(t, err, building.ErrUnknownCategory)

	_, err = a.Assess(math.NaN(), 1000, building.CategoryOffice, inefficientFeatures())
	require.ErrorIs(t, err, ErrDegenerateBaseline)
}

func TestAssessor_Assess_ROIErrors(t *testing.T) {
	a, err := NewAssessor()
	require.NoError(t, err)

	saved := costModels[ImprovementLED]
	t.Cleanup(func() { costModels[ImprovementLED] = saved })

	// A measure with no cost model keeps a nil ROI.
	delete(costModels, ImprovementLED)
	got, err := a.Assess(87.2, 15000, building.CategoryOffice, inefficientFeatures())
	require.NoError(t, err)
	require.Len(t, got.Recommendations, 4)
	for _, rec := range got.Recommendations {
		if rec.Improvement == ImprovementLED {
			assert.Nil(t, rec.ROI)
		} else {
			assert.NotNil(t, rec.ROI, rec.Improvement)
		}
	}

	// Any other projection failure surfaces.
	costModels[ImprovementLED] = costModel{reductionPct: saved.reductionPct, savingsPerTon: saved.savingsPerTon}
	_, err = a.Assess(87.2, 15000, building.CategoryOffice, inefficientFeatures())
	require.ErrorIs(t, err, ErrZeroInvestment)
	assert.False(t, IsNotApplicable(err))
}

func TestAssessor_AssessProfile(t *testing.T) {
	a, err := NewAssessor()
	require.NoError(t, err)

	p, err := building.NewProfile(building.Profile{
		FloorAreaSqft: 15000,
		Category:      building.CategoryOffice,
		HVAC:          building.HVACGasFurnace,
		Insulation:    building.InsulationFair,
		Climate:       building.ClimateCold,
		RenewablePct:  10,
		LEDPct:        60,
	})
	require.NoError(t, err)

	got, err := a.AssessProfile(p, 87.2)
	require.NoError(t, err)
	assert.Equal(t, 15, got.EarnedCredits)
}

func TestAssessment_JSON(t *testing.T) {
	a, err := NewAssessor()
	require.NoError(t, err)
	got, err := a.Assess(87.2, 15000, building.CategoryOffice, inefficientFeatures())
	require.NoError(t, err)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rating":"Exceptional"`)
	assert.Contains(t, string(data), `"status":"typical"`)
	assert.Contains(t, string(data), `"next_tier":{"points":17`)
}
