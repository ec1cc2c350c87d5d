// Package observability bundles Prometheus metrics for the impact engine
// and its outer surfaces.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
)

// Collector holds every metric the engine emits. Register it once per
// process; handlers and the estimator share the same instance.
type Collector struct {
	gatherer prometheus.Gatherer

	Simulations        *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	PopulationQueries  prometheus.Counter
	RasterLoaded       prometheus.Gauge
	NEORequests        *prometheus.CounterVec
}

// NewCollector registers the engine metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "impact_simulations_total",
			Help: "Total casualty estimations, labeled by outcome.",
		}, []string{"outcome"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "impact_simulation_duration_seconds",
			Help:    "Casualty estimation latency in seconds.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		PopulationQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "population_queries_total",
			Help: "Total population-within-radius raster queries.",
		}),
		RasterLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "population_raster_loaded",
			Help: "1 when a population dataset is loaded, 0 in degraded mode.",
		}),
		NEORequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "neo_requests_total",
			Help: "Total NASA NEO API requests, labeled by HTTP status code.",
		}, []string{"code"}),
	}

	for _, m := range []prometheus.Collector{
		c.Simulations,
		c.SimulationDuration,
		c.PopulationQueries,
		c.RasterLoaded,
		c.NEORequests,
	} {
		if err := reg.Register(m); err != nil {
			return nil, eris.Wrap(err, "observability: register metric")
		}
	}

	return c, nil
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
