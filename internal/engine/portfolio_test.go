package engine_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/engine"
	"github.com/qaim-b/the-green-pulse/internal/engine/batch"
	"github.com/qaim-b/the-green-pulse/internal/ingest"
)

func portfolioEntries() []ingest.Entry {
	hq := officeProfile()

	supplied := officeProfile()
	supplied.Name = "Annex"
	tons := 87.2

	failing := officeProfile()
	failing.Name = "Bad"

	return []ingest.Entry{
		{Row: 1, ID: "HQ Tower", Profile: hq},
		{Row: 2, ID: "Annex", Profile: supplied, PredictedTons: &tons},
		{Row: 3, ID: "row-3", Err: fmt.Errorf("%w: floor_area_sqft %q", building.ErrInvalidInput, "lots")},
		{Row: 4, ID: "Bad", Profile: failing},
	}
}

func TestAssessPortfolio(t *testing.T) {
	model := &featureModel{id: "feature@1.0.0"}
	e, err := engine.New(model, nil, engine.WithBatchSize(2), engine.WithConcurrency(2))
	require.NoError(t, err)

	var snapshots []batch.ProgressSnapshot
	res, err := e.AssessPortfolio(context.Background(), portfolioEntries(), func(s batch.ProgressSnapshot) {
		snapshots = append(snapshots, s)
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 4)

	for i, it := range res.Items {
		assert.Equal(t, i, it.Index, "items stay in input order")
	}

	hq := res.Items[0]
	require.NoError(t, hq.Err)
	require.NotNil(t, hq.Report)
	assert.Equal(t, "HQ Tower", hq.Report.ID)
	assert.InDelta(t, 80.0, hq.Report.Assessment.PredictedTons, 1e-9)
	assert.Equal(t, engine.SourceModel, hq.Report.Source)

	annex := res.Items[1]
	require.NoError(t, annex.Err)
	assert.Equal(t, engine.SourceSupplied, annex.Report.Source)
	assert.Equal(t, 15, annex.Report.Assessment.EarnedCredits)

	require.ErrorIs(t, res.Items[2].Err, building.ErrInvalidInput)
	assert.Nil(t, res.Items[2].Report)
	assert.NotEmpty(t, res.Items[2].Error)

	require.ErrorIs(t, res.Items[3].Err, errModelDown)
	assert.Equal(t, "Bad", res.Items[3].Name)

	s := res.Summary
	assert.Len(t, s.RunID, 26)
	assert.Equal(t, 4, s.Buildings)
	assert.Equal(t, 2, s.Assessed)
	assert.Equal(t, 2, s.Failed)
	assert.InDelta(t, 167.2, s.TotalEmissionsTons, 1e-9)
	assert.InDelta(t, 83.6, s.AvgEmissionsTons, 1e-9)
	assert.InDelta(t, 30000.0, s.TotalAreaSqft, 1e-9)
	assert.Equal(t, 1, s.CreditDistribution["15"])
	assert.Equal(t, 2, s.CertificationEligible)
	require.NotNil(t, s.Equivalency)

	require.Len(t, snapshots, 2)
	last := snapshots[len(snapshots)-1]
	assert.Equal(t, 4, last.ProcessedItems)
	assert.Equal(t, 2, last.FailedItems)

	joined := res.Err()
	require.ErrorIs(t, joined, errModelDown)
	require.ErrorIs(t, joined, building.ErrInvalidInput)
	assert.Contains(t, joined.Error(), "Bad: ")
	assert.Contains(t, joined.Error(), "row-3: ")
}

func TestAssessPortfolio_RejectsBadSuppliedEmissions(t *testing.T) {
	e, err := engine.New(&featureModel{}, nil)
	require.NoError(t, err)

	entries, err := ingest.ParseCSV(context.Background(), strings.NewReader(
		strings.Join(ingest.RequiredColumns(), ",")+",predicted_tons\n"+
			"HQ Tower,15000,5,20,100,Gas Furnace,Good,Mixed-Humid,Office,0.3,20,50,-50\n"+
			"Annex,15000,5,20,100,Gas Furnace,Good,Mixed-Humid,Office,0.3,20,50,87.2\n"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, entries[0].Err, "the row itself parses")

	res, err := e.AssessPortfolio(context.Background(), entries, nil)
	require.NoError(t, err)

	bad := res.Items[0]
	require.ErrorIs(t, bad.Err, building.ErrInvalidInput)
	assert.Nil(t, bad.Report)
	assert.Contains(t, bad.Error, "predicted emissions")

	require.NoError(t, res.Items[1].Err)
	assert.Equal(t, 15, res.Items[1].Report.Assessment.EarnedCredits)
	assert.Equal(t, 1, res.Summary.Failed)
}

func TestAssessPortfolio_Cancelled(t *testing.T) {
	e, err := engine.New(&featureModel{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.AssessPortfolio(ctx, portfolioEntries(), nil)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	require.Len(t, res.Items, 4)
	assert.Equal(t, 0, res.Summary.Assessed)
	for _, it := range res.Items {
		assert.Error(t, it.Err)
	}
}

func TestAssessPortfolio_InvalidBatchSize(t *testing.T) {
	e, err := engine.New(&featureModel{}, nil, engine.WithBatchSize(0))
	require.NoError(t, err)

	_, err = e.AssessPortfolio(context.Background(), portfolioEntries(), nil)
	require.ErrorIs(t, err, batch.ErrInvalidBatchSize)
}

func TestSummarize_Empty(t *testing.T) {
	s := engine.Summarize("run", nil)
	assert.Equal(t, 0, s.Buildings)
	assert.Zero(t, s.AvgEmissionsTons)
	assert.Zero(t, s.AvgIntensityKgPerSqft)
	assert.Nil(t, s.Equivalency)
	assert.NotNil(t, s.CreditDistribution)
}
