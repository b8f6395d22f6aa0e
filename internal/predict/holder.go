package predict

import (
	"context"
	"sync"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/logging"
)

// Holder owns the active predictor: loaded once, read by many goroutines,
// replaced only through Swap or Reload.
type Holder struct {
	mu        sync.RWMutex
	predictor Predictor
	source    string
}

// NewHolder returns a Holder serving p. A nil p leaves the Holder empty
// until Swap or Reload is called.
func NewHolder(p Predictor, source string) *Holder {
	return &Holder{predictor: p, source: source}
}

// Current returns the active predictor and where it came from.
func (h *Holder) Current() (Predictor, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.predictor, h.source
}

// Swap replaces the active predictor.
func (h *Holder) Swap(p Predictor, source string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.predictor = p
	h.source = source
}

// Reload compiles the artifact at path and swaps it in. On failure the
// previous model keeps serving.
func (h *Holder) Reload(ctx context.Context, path string) error {
	log := logging.FromContext(ctx)

	m, err := LoadModel(path)
	if err != nil {
		log.Error().Err(err).
			Str("component", "predict").
			Str("path", path).
			Msg("model reload failed, keeping current model")
		return err
	}

	h.Swap(m, path)
	log.Info().
		Str("component", "predict").
		Str("path", path).
		Str("model", m.Identity()).
		Msg("model reloaded")
	return nil
}

// Predict delegates to the active predictor.
func (h *Holder) Predict(ctx context.Context, p building.Profile) (float64, error) {
	current, _ := h.Current()
	if current == nil {
		return 0, ErrNoModel
	}
	return current.Predict(ctx, p)
}

// Identity reports the active model identity, or the load source when the
// predictor does not name itself.
func (h *Holder) Identity() string {
	current, source := h.Current()
	if id, ok := current.(Identifier); ok {
		return id.Identity()
	}
	return source
}
