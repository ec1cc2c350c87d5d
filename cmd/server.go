package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArmaanSap/MeteorMadness2025/internal/casualty"
	"github.com/ArmaanSap/MeteorMadness2025/internal/export"
	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
	"github.com/ArmaanSap/MeteorMadness2025/internal/observability"
	"github.com/ArmaanSap/MeteorMadness2025/internal/store"
	"github.com/ArmaanSap/MeteorMadness2025/pkg/advisory"
	"github.com/ArmaanSap/MeteorMadness2025/pkg/neo"
)

// apiServer bundles the dependencies behind the HTTP API. advisoryGen may be
// nil when no Anthropic key is configured.
type apiServer struct {
	store       store.Store
	estimator   *casualty.Estimator
	neo         *neo.Client
	advisoryGen *advisory.Generator
	metrics     *observability.Collector
}

// newRouter builds the chi router for an apiServer.
func newRouter(s *apiServer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/simulate", s.handleSimulate)
		r.Get("/asteroids", s.handleAsteroids)
		r.Get("/asteroids/{id}", s.handleAsteroid)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
		r.Get("/runs/{id}/export", s.handleExport)
	})

	return r
}

type simulateRequest struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DiameterM   float64 `json:"diameter_m"`
	MassKg      float64 `json:"mass_kg"`
	VelocityKmh float64 `json:"velocity_kmh"`
	Advisory    bool    `json:"advisory"`
}

func (s *apiServer) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.MassKg == 0 {
		req.MassKg = model.MassFromDiameter(req.DiameterM, model.RockyDensityKgM3)
	}
	scenario := model.Scenario{
		Lat:         req.Lat,
		Lon:         req.Lon,
		DiameterM:   req.DiameterM,
		MassKg:      req.MassKg,
		VelocityKmh: req.VelocityKmh,
	}

	start := time.Now()
	report, err := s.estimator.Estimate(r.Context(), scenario)
	if err != nil {
		if s.metrics != nil {
			s.metrics.Simulations.WithLabelValues("invalid").Inc()
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.metrics != nil {
		s.metrics.Simulations.WithLabelValues("ok").Inc()
		s.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	}

	run := &model.Run{
		ID:        uuid.NewString(),
		Scenario:  scenario,
		Report:    report,
		CreatedAt: time.Now().UTC(),
	}

	if req.Advisory && s.advisoryGen != nil {
		text, err := s.advisoryGen.Generate(r.Context(), report)
		if err != nil {
			zap.L().Error("advisory generation failed", zap.Error(err))
		} else {
			run.Advisory = text
		}
	}

	if err := s.store.SaveRun(r.Context(), run); err != nil {
		zap.L().Error("save run failed", zap.String("run_id", run.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to persist run")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

func (s *apiServer) handleAsteroids(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	asteroids, err := s.neo.Browse(r.Context(), page, 20)
	s.countNEO(err)
	if err != nil {
		zap.L().Error("neo browse failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "NEO catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, asteroids)
}

func (s *apiServer) handleAsteroid(w http.ResponseWriter, r *http.Request) {
	a, err := s.neo.Lookup(r.Context(), chi.URLParam(r, "id"))
	s.countNEO(err)
	if err != nil {
		zap.L().Error("neo lookup failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "NEO lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *apiServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	runs, err := s.store.ListRuns(r.Context(), store.RunFilter{Limit: limit, Offset: offset})
	if err != nil {
		zap.L().Error("list runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *apiServer) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if eris.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		zap.L().Error("get run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *apiServer) handleExport(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if eris.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "geojson"
	}
	if format != "geojson" {
		writeError(w, http.StatusBadRequest, "unsupported export format; use the export command for shapefile and xlsx")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := export.WriteGeoJSON(w, run); err != nil {
		zap.L().Error("geojson export failed", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func (s *apiServer) countNEO(err error) {
	if s.metrics == nil {
		return
	}
	code := "200"
	if err != nil {
		code = "error"
	}
	s.metrics.NEORequests.WithLabelValues(code).Inc()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
