// Package predict defines the emissions prediction boundary and ships a
// deterministic reference model loaded from a YAML artifact.
//
// The scoring engine treats a prediction as an opaque tons-CO2-per-year
// scalar; any Predictor can be injected in place of the reference model.
package predict

import (
	"context"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Errors returned by model loading and prediction.
var (
	// ErrInvalidModel indicates a model artifact that is missing coefficients
	// or carries values outside their allowed range.
	ErrInvalidModel = constError("invalid model artifact")

	// ErrUnsupportedSchema indicates an artifact schema version this build
	// cannot read.
	ErrUnsupportedSchema = constError("unsupported model schema version")

	// ErrNoModel indicates a Holder used before a model was loaded.
	ErrNoModel = constError("no model loaded")
)

// Predictor estimates annual emissions, in metric tons CO2, for a building.
type Predictor interface {
	Predict(ctx context.Context, p building.Profile) (float64, error)
}

// Func adapts a plain function to Predictor.
type Func func(ctx context.Context, p building.Profile) (float64, error)

// Predict calls f.
func (f Func) Predict(ctx context.Context, p building.Profile) (float64, error) {
	return f(ctx, p)
}

// Identifier is implemented by predictors that can name the model version
// they serve. Caches key on it.
type Identifier interface {
	Identity() string
}
