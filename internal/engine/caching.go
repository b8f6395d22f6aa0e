package engine

import (
	"context"
	"errors"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/engine/cache"
	"github.com/qaim-b/the-green-pulse/internal/logging"
	"github.com/qaim-b/the-green-pulse/internal/predict"
)

// CachingPredictor serves predictions from a file cache keyed by model
// identity and building profile, falling through to the wrapped predictor
// on a miss. Predictors that do not identify their model are never cached.
type CachingPredictor struct {
	next  predict.Predictor
	store *cache.FileStore
}

// NewCachingPredictor wraps next with store.
func NewCachingPredictor(next predict.Predictor, store *cache.FileStore) *CachingPredictor {
	return &CachingPredictor{next: next, store: store}
}

// Identity reports the wrapped model's identity.
func (c *CachingPredictor) Identity() string {
	if id, ok := c.next.(predict.Identifier); ok {
		return id.Identity()
	}
	return ""
}

// Predict returns the cached prediction for p or computes and stores it.
// Cache failures are logged and never fail the prediction.
func (c *CachingPredictor) Predict(ctx context.Context, p building.Profile) (float64, error) {
	modelID := c.Identity()
	if c.store == nil || !c.store.IsEnabled() || modelID == "" {
		return c.next.Predict(ctx, p)
	}

	log := logging.FromContext(ctx)
	key, err := cache.Key(modelID, p)
	if err != nil {
		return c.next.Predict(ctx, p)
	}

	entry, err := c.store.Get(key)
	switch {
	case err == nil:
		log.Debug().
			Ctx(ctx).
			Str("component", "cache").
			Str("building", p.DisplayName()).
			Str("model", modelID).
			Dur("age", entry.Age()).
			Msg("prediction cache hit")
		return entry.TonsPerYear, nil
	case errors.Is(err, cache.ErrCacheNotFound), errors.Is(err, cache.ErrCacheExpired):
	default:
		log.Warn().
			Ctx(ctx).
			Str("component", "cache").
			Err(err).
			Msg("prediction cache read failed")
	}

	tons, err := c.next.Predict(ctx, p)
	if err != nil {
		return 0, err
	}
	if putErr := c.store.Put(key, modelID, tons); putErr != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "cache").
			Err(putErr).
			Msg("prediction cache write failed")
	}
	return tons, nil
}
