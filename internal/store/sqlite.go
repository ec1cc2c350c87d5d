package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	scenario   TEXT NOT NULL,
	report     TEXT,
	advisory   TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *model.Run) error {
	scenarioJSON, err := json.Marshal(run.Scenario)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal scenario")
	}
	var reportJSON []byte
	if run.Report != nil {
		reportJSON, err = json.Marshal(run.Report)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal report")
		}
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, scenario, report, advisory, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, string(scenarioJSON), nullableString(reportJSON), run.Advisory, run.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, scenario, report, advisory, created_at FROM runs WHERE id = ?`,
		runID,
	)

	var run model.Run
	var scenarioJSON string
	var reportJSON sql.NullString
	if err := row.Scan(&run.ID, &scenarioJSON, &reportJSON, &run.Advisory, &run.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrRunNotFound, "sqlite: get run %s", runID)
		}
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	if err := unmarshalRun(&run, scenarioJSON, reportJSON.String); err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scenario, report, advisory, created_at FROM runs ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, filter.Offset,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var scenarioJSON string
		var reportJSON sql.NullString
		if err := rows.Scan(&run.ID, &scenarioJSON, &reportJSON, &run.Advisory, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		if err := unmarshalRun(&run, scenarioJSON, reportJSON.String); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate runs")
	}
	return runs, nil
}

// unmarshalRun fills the Scenario and Report fields from their stored JSON.
func unmarshalRun(run *model.Run, scenarioJSON, reportJSON string) error {
	if err := json.Unmarshal([]byte(scenarioJSON), &run.Scenario); err != nil {
		return eris.Wrapf(err, "store: unmarshal scenario for run %s", run.ID)
	}
	if reportJSON != "" {
		run.Report = &model.CasualtyReport{}
		if err := json.Unmarshal([]byte(reportJSON), run.Report); err != nil {
			return eris.Wrapf(err, "store: unmarshal report for run %s", run.ID)
		}
	}
	return nil
}

// nullableString converts empty JSON to a SQL NULL.
func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
