package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/config"
	"github.com/qaim-b/the-green-pulse/internal/engine"
	"github.com/qaim-b/the-green-pulse/internal/engine/cache"
	"github.com/qaim-b/the-green-pulse/internal/logging"
	"github.com/qaim-b/the-green-pulse/internal/predict"
)

// modelSourceBuiltin labels the reference model compiled into the binary.
const modelSourceBuiltin = "builtin"

// loadPredictor returns a Holder serving the model named by --model or
// model.path, or the built-in reference model when neither is set.
func loadPredictor(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*predict.Holder, error) {
	path, _ := cmd.Flags().GetString("model")
	if path == "" {
		path = cfg.Model.Path
	}

	holder := predict.NewHolder(predict.DefaultModel(), modelSourceBuiltin)
	if path == "" {
		return holder, nil
	}
	if err := holder.Reload(ctx, path); err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}
	return holder, nil
}

// resolveCacheTTL applies --cache-ttl (seconds) over the configured TTL.
func resolveCacheTTL(cmd *cobra.Command, cfg *config.Config) (time.Duration, error) {
	if secs, _ := cmd.Flags().GetInt("cache-ttl"); secs > 0 {
		return cache.ParseTTL(strconv.Itoa(secs))
	}
	return cfg.CacheTTL()
}

// openCache opens the prediction cache described by cfg and the flags.
func openCache(cmd *cobra.Command, cfg *config.Config) (*cache.FileStore, error) {
	enabled := cfg.Cache.Enabled
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		enabled = false
	}

	ttl, err := resolveCacheTTL(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid cache TTL: %w", err)
	}

	dir := cfg.Cache.Directory
	if dir == "" {
		if dir, err = config.GetCacheDir(); err != nil {
			return nil, err
		}
	}
	return cache.NewFileStore(dir, enabled, ttl)
}

// buildEngine assembles an Engine from the global configuration and the
// persistent flags: model, prediction cache, tier ladder and portfolio
// limits.
func buildEngine(cmd *cobra.Command) (*engine.Engine, error) {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	tiers, err := cfg.TierTable()
	if err != nil {
		return nil, fmt.Errorf("invalid certification tiers: %w", err)
	}
	assessor, err := certification.NewAssessor(certification.WithTierTable(tiers))
	if err != nil {
		return nil, err
	}

	holder, err := loadPredictor(ctx, cmd, cfg)
	if err != nil {
		return nil, err
	}

	store, err := openCache(cmd, cfg)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(
		engine.NewCachingPredictor(holder, store),
		assessor,
		engine.WithBatchSize(cfg.Portfolio.BatchSize),
		engine.WithConcurrency(cfg.Portfolio.Concurrency),
	)
	if err != nil {
		return nil, err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "build_engine").
		Str("model", eng.ModelID()).
		Bool("cache_enabled", store.IsEnabled()).
		Int("max_credits", tiers.MaxCredits()).
		Msg("engine ready")

	return eng, nil
}
