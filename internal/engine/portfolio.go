package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/engine/batch"
	"github.com/qaim-b/the-green-pulse/internal/greenops"
	"github.com/qaim-b/the-green-pulse/internal/ingest"
	"github.com/qaim-b/the-green-pulse/internal/logging"
)

// ItemResult is the outcome for one portfolio building: a Report, or an
// error marker that keeps the building's place in the output.
type ItemResult struct {
	Index  int     `json:"index"`
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Report *Report `json:"report,omitempty"`
	Err    error   `json:"-"`
	Error  string  `json:"error,omitempty"`
}

// PortfolioSummary aggregates the successfully assessed buildings.
type PortfolioSummary struct {
	RunID                 string                      `json:"run_id"`
	Buildings             int                         `json:"buildings"`
	Assessed              int                         `json:"assessed"`
	Failed                int                         `json:"failed"`
	CertificationEligible int                         `json:"certification_eligible"`
	TotalEmissionsTons    float64                     `json:"total_emissions_tons"`
	AvgEmissionsTons      float64                     `json:"avg_emissions_tons"`
	TotalAreaSqft         float64                     `json:"total_area_sqft"`
	AvgIntensityKgPerSqft float64                     `json:"avg_intensity_kg_per_sqft"`
	AvgCredits            float64                     `json:"avg_credits"`
	CreditDistribution    map[string]int              `json:"credit_distribution"`
	RatingDistribution    map[string]int              `json:"rating_distribution"`
	Equivalency           *greenops.EquivalencyOutput `json:"equivalency,omitempty"`
}

// PortfolioResult holds every item, in input order, plus the summary.
type PortfolioResult struct {
	Summary PortfolioSummary `json:"summary"`
	Items   []ItemResult     `json:"items"`

	failures error
}

// Err joins the per-building errors, each prefixed with the building name,
// or returns nil when all succeeded.
func (r *PortfolioResult) Err() error {
	return r.failures
}

// AssessPortfolio assesses every entry with bounded concurrency. A failing
// building never stops the others; entries that failed to load keep their
// load error. Rows with a predicted_tons value skip the model.
//
// The returned error is non-nil only when ctx ends the run early; the
// partial result is still returned.
func (e *Engine) AssessPortfolio(
	ctx context.Context,
	entries []ingest.Entry,
	onProgress batch.ProgressCallback,
) (*PortfolioResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()
	runID := ulid.Make().String()

	proc, err := batch.NewProcessor[ingest.Entry, *Report](e.batchSize, e.concurrency)
	if err != nil {
		return nil, err
	}
	if onProgress != nil {
		proc.WithProgressCallback(onProgress)
	}

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "assess_portfolio").
		Str("run_id", runID).
		Int("building_count", len(entries)).
		Int("batch_size", proc.GetBatchSize()).
		Int("concurrency", proc.GetConcurrency()).
		Msg("starting portfolio assessment")

	results, runErr := proc.Map(ctx, entries, func(ctx context.Context, _ int, entry ingest.Entry) (*Report, error) {
		if entry.Err != nil {
			return nil, entry.Err
		}
		var r *Report
		var assessErr error
		if entry.PredictedTons != nil {
			r, assessErr = e.AssessWithPrediction(ctx, entry.Profile, *entry.PredictedTons)
		} else {
			r, assessErr = e.AssessBuilding(ctx, entry.Profile)
		}
		if assessErr != nil {
			return nil, assessErr
		}
		r.ID = entry.ID
		return r, nil
	})

	items := make([]ItemResult, len(results))
	for i, res := range results {
		items[i] = ItemResult{
			Index:  i,
			ID:     entries[i].ID,
			Name:   entries[i].Name(),
			Report: res.Value,
			Err:    res.Err,
		}
		if res.Err != nil {
			items[i].Report = nil
			items[i].Error = res.Err.Error()
			log.Warn().
				Ctx(ctx).
				Str("component", "engine").
				Str("run_id", runID).
				Str("building", items[i].Name).
				Err(res.Err).
				Msg("building assessment failed")
		}
	}

	failures := batch.Errors(results, func(i int) string {
		return entries[i].Name()
	})
	result := &PortfolioResult{
		Summary:  Summarize(runID, items),
		Items:    items,
		failures: failures,
	}

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "assess_portfolio").
		Str("run_id", runID).
		Int("assessed", result.Summary.Assessed).
		Int("failed", result.Summary.Failed).
		Dur("duration_ms", time.Since(start)).
		Msg("portfolio assessment complete")

	return result, runErr
}

// Summarize aggregates items into a PortfolioSummary.
func Summarize(runID string, items []ItemResult) PortfolioSummary {
	s := PortfolioSummary{
		RunID:              runID,
		Buildings:          len(items),
		CreditDistribution: make(map[string]int),
		RatingDistribution: make(map[string]int),
	}

	totalCredits := 0
	for _, it := range items {
		if it.Err != nil || it.Report == nil {
			s.Failed++
			continue
		}
		a := it.Report.Assessment
		s.Assessed++
		s.TotalEmissionsTons += a.PredictedTons
		s.TotalAreaSqft += it.Report.Profile.FloorAreaSqft
		totalCredits += a.EarnedCredits
		if a.CertificationEligible {
			s.CertificationEligible++
		}
		s.CreditDistribution[strconv.Itoa(a.EarnedCredits)]++
		s.RatingDistribution[a.Rating.String()]++
	}

	if s.Assessed > 0 {
		s.AvgEmissionsTons = s.TotalEmissionsTons / float64(s.Assessed)
		s.AvgCredits = float64(totalCredits) / float64(s.Assessed)
	}
	if s.TotalAreaSqft > 0 {
		intensity, err := certification.Intensity(s.TotalEmissionsTons, s.TotalAreaSqft)
		if err == nil {
			s.AvgIntensityKgPerSqft = intensity
		}
	}
	if eq, err := greenops.CalculateTons(s.TotalEmissionsTons); err == nil && !eq.IsEmpty {
		s.Equivalency = &eq
	}
	return s
}
