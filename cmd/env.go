package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/ArmaanSap/MeteorMadness2025/internal/casualty"
	"github.com/ArmaanSap/MeteorMadness2025/internal/observability"
	"github.com/ArmaanSap/MeteorMadness2025/internal/raster"
	"github.com/ArmaanSap/MeteorMadness2025/internal/store"
	"github.com/ArmaanSap/MeteorMadness2025/pkg/advisory"
	"github.com/ArmaanSap/MeteorMadness2025/pkg/neo"
)

func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store)
}

// initRaster loads the configured population grid. A missing grid is not
// fatal: the estimator degrades to zero population figures until `impact
// raster fetch` has run.
func initRaster() *raster.PopulationRaster {
	grid, err := raster.LoadASC(cfg.Raster.Path)
	if err != nil {
		zap.L().Warn("population raster unavailable, running degraded",
			zap.String("path", cfg.Raster.Path),
			zap.Error(err),
		)
		return raster.New(nil)
	}
	return raster.New(grid)
}

func initEstimator(metrics *observability.Collector) *casualty.Estimator {
	pop := initRaster()
	if metrics != nil {
		if pop.Loaded() {
			metrics.RasterLoaded.Set(1)
		} else {
			metrics.RasterLoaded.Set(0)
		}
	}
	return casualty.New(pop, metrics)
}

func initNEO() *neo.Client {
	return neo.NewClient(neo.Options{
		BaseURL: cfg.NASA.BaseURL,
		APIKey:  cfg.NASA.Key,
	})
}

// initAdvisory returns nil when no Anthropic key is configured; callers skip
// briefing generation in that case.
func initAdvisory() *advisory.Generator {
	if cfg.Anthropic.Key == "" {
		return nil
	}
	client := advisory.NewClient(cfg.Anthropic.Key)
	return advisory.NewGenerator(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
}
