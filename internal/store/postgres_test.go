package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmaanSap/MeteorMadness2025/internal/config"
)

// configStore builds a StoreConfig for tests.
func configStore(driver, url string) config.StoreConfig {
	return config.StoreConfig{Driver: driver, DatabaseURL: url}
}

// newMockPostgresStore creates a PostgresStore backed by pgxmock.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgres_SaveRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	run := sampleRun()

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(run.ID, pgxmock.AnyArg(), pgxmock.AnyArg(), run.Advisory, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveRun(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	run := sampleRun()

	scenarioJSON, err := json.Marshal(run.Scenario)
	require.NoError(t, err)
	reportJSON, err := json.Marshal(run.Report)
	require.NoError(t, err)
	report := string(reportJSON)

	mock.ExpectQuery(`SELECT id, scenario, report, advisory, created_at FROM runs WHERE id = \$1`).
		WithArgs(run.ID).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "scenario", "report", "advisory", "created_at"}).
				AddRow(run.ID, string(scenarioJSON), &report, run.Advisory, time.Now().UTC()),
		)

	got, err := s.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Scenario, got.Scenario)
	require.NotNil(t, got.Report)
	assert.Equal(t, run.Report.TotalDeaths, got.Report.TotalDeaths)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, scenario, report, advisory, created_at FROM runs WHERE id = \$1`).
		WithArgs("nonexistent-run").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetRun(context.Background(), "nonexistent-run")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrRunNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListRuns(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	run := sampleRun()

	scenarioJSON, err := json.Marshal(run.Scenario)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, scenario, report, advisory, created_at FROM runs ORDER BY created_at DESC`).
		WithArgs(50, 0).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "scenario", "report", "advisory", "created_at"}).
				AddRow(run.ID, string(scenarioJSON), (*string)(nil), "", time.Now().UTC()),
		)

	runs, err := s.ListRuns(context.Background(), RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.Scenario, runs[0].Scenario)
	assert.Nil(t, runs[0].Report)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS runs`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
