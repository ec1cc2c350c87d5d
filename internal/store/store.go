// Package store persists simulation runs for later inspection and export.
// The core engine never reads history back into an estimate; the store is
// an outer surface.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/ArmaanSap/MeteorMadness2025/internal/config"
	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

// ErrRunNotFound is returned by GetRun for unknown run IDs.
var ErrRunNotFound = eris.New("store: run not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Store defines the run-history persistence interface.
type Store interface {
	SaveRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs the Store selected by the config driver and runs
// migrations.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var s Store
	switch cfg.Driver {
	case "sqlite":
		st, err := NewSQLite(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s = st
	case "postgres":
		st, err := NewPostgres(ctx, cfg.DatabaseURL, nil)
		if err != nil {
			return nil, err
		}
		s = st
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
