package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/engine"
	"github.com/qaim-b/the-green-pulse/internal/ingest"
	"github.com/qaim-b/the-green-pulse/internal/predict"
)

func testEngine(t *testing.T, tons float64) *engine.Engine {
	t.Helper()
	e, err := engine.New(predict.Func(func(context.Context, building.Profile) (float64, error) {
		return tons, nil
	}), nil)
	require.NoError(t, err)
	return e
}

func office() building.Profile {
	return building.Profile{
		Name:          "HQ Tower",
		FloorAreaSqft: 15000,
		Category:      building.CategoryOffice,
		HVAC:          building.HVACGasFurnace,
		Insulation:    building.InsulationFair,
		Climate:       building.ClimateCold,
		RenewablePct:  10,
		LEDPct:        60,
	}
}

func TestRenderCreditBar(t *testing.T) {
	assert.Empty(t, RenderCreditBar(3, 0))
	assert.Contains(t, RenderCreditBar(18, 18), "██████████████████")
	assert.Contains(t, RenderCreditBar(0, 18), "░░░░░░░░░░░░░░░░░░")
	assert.Contains(t, RenderCreditBar(9, 18), "█████████░░░░░░░░░")
}

func TestRenderAssessmentCard(t *testing.T) {
	r, err := testEngine(t, 87.2).AssessBuilding(context.Background(), office())
	require.NoError(t, err)

	card := RenderAssessmentCard(r, 90)
	assert.Contains(t, card, "HQ TOWER")
	assert.Contains(t, card, "87.20 t/yr")
	assert.Contains(t, card, "15/18")
	assert.Contains(t, card, "RECOMMENDATIONS")
	assert.Contains(t, card, "cars driven for a year")
}

func TestRenderPortfolioSummary(t *testing.T) {
	e := testEngine(t, 87.2)
	res, err := e.AssessPortfolio(context.Background(), []ingest.Entry{
		{ID: "HQ Tower", Profile: office()},
		{ID: "row-2", Err: building.ErrInvalidInput},
	}, nil)
	require.NoError(t, err)

	card := RenderPortfolioSummary(res, 80)
	assert.Contains(t, card, "PORTFOLIO SUMMARY")
	assert.Contains(t, card, "1 assessed")
	assert.Contains(t, card, "1 failed")
	assert.Contains(t, card, "Exceptional: 1")

	empty := RenderPortfolioSummary(&engine.PortfolioResult{}, 80)
	assert.Contains(t, empty, "No buildings")
}

func TestDetectOutputMode(t *testing.T) {
	assert.Equal(t, OutputModePlain, DetectOutputMode(true))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, OutputModePlain, DetectOutputMode(false))
}

func TestTerminalWidthFallback(t *testing.T) {
	assert.Positive(t, TerminalWidth())
}
