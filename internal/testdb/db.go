// Package testdb provides Postgres helpers for integration tests. Tests that
// use it are skipped unless TASKS_TEST_DATABASE_URL is set.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// URLEnvVar names the environment variable holding the test database URL.
const URLEnvVar = "TASKS_TEST_DATABASE_URL"

// TestTimeout bounds setup operations against the test database.
const TestTimeout = 10 * time.Second

var migrateOnce sync.Once

// GetTestDB opens the test database, applies migrations once per process,
// and closes the connection when the test ends. It skips the test when no
// database URL is configured.
func GetTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv(URLEnvVar)
	if url == "" {
		t.Skipf("%s not set - skipping integration test", URLEnvVar)
	}

	db, err := sqlx.Open("pgx", url)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "database ping failed")

	var migrateErr error
	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, db.DB, postgres.MigrateUp, nil)
	})
	require.NoError(t, migrateErr, "failed to apply migrations")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// leave no rows behind.
func WithTx(t *testing.T, db *sqlx.DB, fn func(t *testing.T, tx *sqlx.Tx)) {
	t.Helper()

	tx, err := db.Beginx()
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
