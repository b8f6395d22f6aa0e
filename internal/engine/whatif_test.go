package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/engine"
)

func TestWhatIf(t *testing.T) {
	e, err := engine.New(&featureModel{}, nil)
	require.NoError(t, err)

	// 100 - 20*0.5 - Good(2)*5 = 80.
	res, err := e.WhatIf(context.Background(), officeProfile())
	require.NoError(t, err)
	assert.InDelta(t, 80.0, res.CurrentTons, 1e-9)
	require.Len(t, res.Options, 3)

	tests := []struct {
		improvement certification.Improvement
		newTons     float64
		savings     float64
	}{
		{improvement: certification.ImprovementSolar, newTons: 65, savings: 15},
		{improvement: certification.ImprovementHeatPump, newTons: 70, savings: 10},
		{improvement: certification.ImprovementInsulation, newTons: 75, savings: 5},
	}
	for i, tt := range tests {
		got := res.Options[i]
		assert.Equal(t, tt.improvement, got.Improvement)
		assert.InDelta(t, tt.newTons, got.NewTons, 1e-9)
		assert.InDelta(t, tt.savings, got.SavingsTons, 1e-9)
		assert.InDelta(t, tt.savings/80*100, got.SavingsPct, 1e-9)
		require.NotNil(t, got.ROI)
		assert.InDelta(t, 80.0, got.ROI.EmissionsReductionTons/(got.ROI.ReductionPct/100), 1e-6,
			"ROI is priced on current emissions")
	}
}

func TestWhatIf_NothingToImprove(t *testing.T) {
	e, err := engine.New(&featureModel{}, nil)
	require.NoError(t, err)

	p := officeProfile()
	p.RenewablePct = 60
	p.Insulation = building.InsulationExcellent
	p.HVAC = building.HVACGeothermal

	res, err := e.WhatIf(context.Background(), p)
	require.NoError(t, err)
	assert.NotNil(t, res.Options)
	assert.Empty(t, res.Options)
}

func TestWhatIf_DropsChangesThatRaiseEmissions(t *testing.T) {
	worse := fixedByHVAC{geothermal: 200, other: 100}
	e, err := engine.New(worse, nil)
	require.NoError(t, err)

	p := officeProfile()
	p.RenewablePct = 80
	p.Insulation = building.InsulationExcellent

	res, err := e.WhatIf(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, res.Options)
}

func TestWhatIf_Errors(t *testing.T) {
	e, err := engine.New(&featureModel{}, nil)
	require.NoError(t, err)

	p := officeProfile()
	p.Name = "Bad"
	_, err = e.WhatIf(context.Background(), p)
	require.ErrorIs(t, err, errModelDown)

	p = officeProfile()
	p.LEDPct = 101
	_, err = e.WhatIf(context.Background(), p)
	require.ErrorIs(t, err, building.ErrInvalidInput)
}

type fixedByHVAC struct {
	geothermal, other float64
}

func (f fixedByHVAC) Predict(_ context.Context, p building.Profile) (float64, error) {
	if p.HVAC == building.HVACGeothermal {
		return f.geothermal, nil
	}
	return f.other, nil
}
