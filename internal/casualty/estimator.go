// Package casualty converts hazard-zone radii into population bands and
// death estimates against a population raster.
package casualty

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ArmaanSap/MeteorMadness2025/internal/effects"
	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
	"github.com/ArmaanSap/MeteorMadness2025/internal/observability"
)

// Fatality fractions per zone. Fixed model constants: the crater kills
// everyone inside it, the strong-shaking ring outside the crater kills 80%,
// and the shockwave ring outside strong shaking kills 30%. Moderate/light
// shaking and tsunami zones contribute injuries and property damage only.
const (
	craterFatality    = 1.0
	strongFatality    = 0.8
	shockwaveFatality = 0.3
)

// PopulationSource answers cumulative population queries. Satisfied by
// *raster.PopulationRaster; narrow so tests can substitute a fake.
type PopulationSource interface {
	PopulationWithinRadius(lat, lon, radiusKm float64) float64
	Loaded() bool
}

// Estimator combines the effects model with a population source.
type Estimator struct {
	pop     PopulationSource
	metrics *observability.Collector
}

// New creates an Estimator. metrics may be nil.
func New(pop PopulationSource, metrics *observability.Collector) *Estimator {
	return &Estimator{pop: pop, metrics: metrics}
}

// Estimate runs the full pipeline for one scenario: validate, compute hazard
// zones, sample cumulative populations per radius, difference them into
// disjoint rings, and apply the fatality fractions.
//
// The report is always structurally complete. When the raster is not loaded
// every population figure, and therefore every death count, degrades to zero.
func (e *Estimator) Estimate(ctx context.Context, s model.Scenario) (*model.CasualtyReport, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	zones := effects.Compute(s)
	report := &model.CasualtyReport{Scenario: s, Zones: zones}

	if !e.pop.Loaded() {
		zap.L().Warn("casualty: population raster unavailable, deaths degrade to zero",
			zap.Float64("lat", s.Lat),
			zap.Float64("lon", s.Lon),
		)
		return report, nil
	}

	// Cumulative queries are independent reads against an immutable grid,
	// so they run concurrently.
	queries := []struct {
		radiusKm float64
		dst      *float64
	}{
		{zones.CraterRadiusKm, &report.PopCrater},
		{zones.ShockwaveKm, &report.PopShockwave},
		{zones.StrongShakingKm, &report.PopStrongSeismic},
		{zones.ModerateShakingKm, &report.PopModerateSeismic},
		{zones.LightShakingKm, &report.PopLightSeismic},
	}
	if zones.Tsunami != nil {
		queries = append(queries, struct {
			radiusKm float64
			dst      *float64
		}{zones.Tsunami.RadiusKm, &report.PopTsunami})
	}

	g, _ := errgroup.WithContext(ctx)
	for _, q := range queries {
		g.Go(func() error {
			*q.dst = e.pop.PopulationWithinRadius(s.Lat, s.Lon, q.radiusKm)
			if e.metrics != nil {
				e.metrics.PopulationQueries.Inc()
			}
			return nil
		})
	}
	// Queries never return errors; they degrade to zero internally.
	_ = g.Wait()

	// Ring ordering: crater ⊂ strong ⊂ moderate ⊂ light, with the shockwave
	// ring differenced against strong shaking. The model does not guarantee
	// shockwave ≥ strong, so negative differences clamp to zero rather than
	// being "fixed" by reordering.
	strongRing := clampZero(report.PopStrongSeismic - report.PopCrater)
	shockRing := clampZero(report.PopShockwave - report.PopStrongSeismic)

	report.CraterDeaths = report.PopCrater * craterFatality
	report.StrongSeismicDeaths = strongRing * strongFatality
	report.ShockwaveDeaths = shockRing * shockwaveFatality
	report.TotalDeaths = report.CraterDeaths + report.StrongSeismicDeaths + report.ShockwaveDeaths

	zap.L().Info("casualty: estimate complete",
		zap.Float64("lat", s.Lat),
		zap.Float64("lon", s.Lon),
		zap.Float64("energy_mt", zones.EnergyMt),
		zap.Float64("magnitude", zones.Magnitude),
		zap.Bool("water", zones.Water),
		zap.Float64("total_deaths", report.TotalDeaths),
	)

	return report, nil
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
