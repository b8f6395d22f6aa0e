package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/greenops"
	"github.com/qaim-b/the-green-pulse/internal/logging"
)

// AssessBuilding validates p, predicts its annual emissions and scores them.
func (e *Engine) AssessBuilding(ctx context.Context, p building.Profile) (*Report, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	p, err := building.NewProfile(p)
	if err != nil {
		return nil, err
	}

	predicted, err := e.predictor.Predict(ctx, p)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "assess_building").
			Str("building", p.DisplayName()).
			Err(err).
			Msg("prediction failed")
		return nil, fmt.Errorf("predicting emissions: %w", err)
	}

	report, err := e.report(p, predicted, SourceModel)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "assess_building").
		Str("building", report.Name).
		Float64("predicted_tons", predicted).
		Int("credits", report.Assessment.EarnedCredits).
		Dur("duration_ms", time.Since(start)).
		Msg("building assessed")

	return report, nil
}

// AssessWithPrediction scores p against an emissions figure supplied by the
// caller instead of the model. predictedTons must be finite and >= 0.
func (e *Engine) AssessWithPrediction(ctx context.Context, p building.Profile, predictedTons float64) (*Report, error) {
	p, err := building.NewProfile(p)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(predictedTons) || math.IsInf(predictedTons, 0) || predictedTons < 0 {
		return nil, fmt.Errorf("%w: predicted emissions must be >= 0, got %v",
			building.ErrInvalidInput, predictedTons)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return e.report(p, predictedTons, SourceSupplied)
}

func (e *Engine) report(p building.Profile, predicted float64, source PredictionSource) (*Report, error) {
	assessment, err := e.assessor.AssessProfile(p, predicted)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Name:       p.DisplayName(),
		Profile:    p,
		Source:     source,
		Assessment: assessment,
	}
	if source == SourceModel {
		r.Model = e.ModelID()
	}
	if eq, eqErr := greenops.CalculateTons(predicted); eqErr == nil && !eq.IsEmpty {
		r.Equivalency = &eq
	}
	return r, nil
}
