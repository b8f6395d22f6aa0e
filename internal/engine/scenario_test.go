package engine_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/engine"
)

func TestScenarios(t *testing.T) {
	all := engine.Scenarios()
	require.Len(t, all, 7)

	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"Solar", "Heat Pump", "Insulation Upgrade", "LED Retrofit",
		"Solar + Heat Pump", "Heat Pump + Insulation", "Full Package",
	}, names)

	full, err := engine.ParseScenario("full package")
	require.NoError(t, err)
	assert.InDelta(t, 0.86, full.ReductionShare, 1e-12)
	assert.Len(t, full.Improvements, 5)

	_, err = engine.ParseScenario("Moon Base")
	require.ErrorIs(t, err, certification.ErrNotApplicable)
}

func TestCompareScenarios(t *testing.T) {
	e, err := engine.New(fixed(0), nil)
	require.NoError(t, err)

	out, err := e.CompareScenarios(100, 10000, engine.Scenarios())
	require.NoError(t, err)
	require.Len(t, out, 7)

	tests := []struct {
		scenario string
		newTons  float64
		cost     float64
		savings  float64
		boost    int
	}{
		{scenario: "Solar", newTons: 75, cost: 85000, savings: 1250, boost: 4},
		{scenario: "Heat Pump", newTons: 80, cost: 120000, savings: 1300, boost: 3},
		{scenario: "Insulation Upgrade", newTons: 85, cost: 35000, savings: 825, boost: 2},
		{scenario: "LED Retrofit", newTons: 92, cost: 12000, savings: 360, boost: 1},
		{scenario: "Solar + Heat Pump", newTons: 55, cost: 205000, savings: 2550, boost: 8},
		{scenario: "Heat Pump + Insulation", newTons: 65, cost: 155000, savings: 2125, boost: 6},
		{scenario: "Full Package", newTons: 14, cost: 307000, savings: 4779, boost: 15},
	}
	for i, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			o := out[i]
			assert.Equal(t, tt.scenario, o.Scenario)
			assert.InDelta(t, tt.newTons, o.NewEmissionsTons, 1e-9)
			assert.InDelta(t, 100-tt.newTons, o.ReductionTons, 1e-9)
			assert.InDelta(t, tt.cost, o.TotalCost.InexactFloat64(), 1e-6)
			assert.InDelta(t, tt.savings, o.AnnualSavings.InexactFloat64(), 1e-6)
			assert.Equal(t, tt.boost, o.CreditBoost)
			require.NotNil(t, o.PaybackYears)
			assert.InDelta(t, tt.cost/tt.savings, *o.PaybackYears, 1e-6)
			assert.InDelta(t, (tt.savings*10-tt.cost)/tt.cost*100, o.ROI10Pct, 1e-6)
		})
	}
}

func TestCompareScenarios_ZeroEmissions(t *testing.T) {
	e, err := engine.New(fixed(0), nil)
	require.NoError(t, err)

	out, err := e.CompareScenarios(0, 10000, engine.Scenarios()[:1])
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].AnnualSavings.Equal(decimal.Zero))
	assert.Nil(t, out[0].PaybackYears, "no payback without savings")
	assert.InDelta(t, -100.0, out[0].ROI10Pct, 1e-9)
}

func TestCompareScenarios_InvalidInput(t *testing.T) {
	e, err := engine.New(fixed(0), nil)
	require.NoError(t, err)

	for _, tc := range []struct{ tons, area float64 }{
		{tons: math.NaN(), area: 1000},
		{tons: -1, area: 1000},
		{tons: 10, area: 0},
		{tons: 10, area: math.Inf(1)},
	} {
		_, err = e.CompareScenarios(tc.tons, tc.area, engine.Scenarios())
		require.ErrorIs(t, err, building.ErrInvalidInput, "%+v", tc)
	}
}
