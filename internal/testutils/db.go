package testutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"

	"github.com/courseforge/courseforge-api/internal/ciutil"
	"github.com/courseforge/courseforge-api/migrations"
)

// migrationsRunOnce ensures migrations run only once across the suite.
var migrationsRunOnce sync.Once

// IsIntegrationTestEnvironment reports whether a test database is
// available. Integration tests skip themselves when it returns false.
func IsIntegrationTestEnvironment() bool {
	return ciutil.GetTestDatabaseURL(nil) != ""
}

// GetTestDBWithT returns a migrated database connection for testing.
// Cleanup is registered with t.Cleanup, so callers do not close it.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	db, err := GetTestDB()
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Logf("Warning: failed to close database connection: %v", closeErr)
		}
	})

	return db
}

// GetTestDB opens a connection to the test database, verifies it, and
// applies all migrations. Prefer GetTestDBWithT in tests; this variant
// exists for callers that manage the connection lifecycle themselves.
func GetTestDB() (*sql.DB, error) {
	dbURL := ciutil.GetTestDatabaseURL(slog.Default())
	if dbURL == "" {
		return nil, errors.New("no test database URL configured")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("database ping failed: %w (and failed to close connection: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := setupTestDatabaseSchema(db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to setup database schema: %w (and failed to close connection: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to setup database schema: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// setupTestDatabaseSchema applies the embedded migrations. Guarded by
// sync.Once so parallel tests do not race on goose's package state.
func setupTestDatabaseSchema(db *sql.DB) error {
	var setupErr error
	migrationsRunOnce.Do(func() {
		goose.SetBaseFS(migrations.FS)
		goose.SetLogger(goose.NopLogger())

		if err := goose.SetDialect("postgres"); err != nil {
			setupErr = fmt.Errorf("failed to set goose dialect: %w", err)
			return
		}

		if err := goose.Up(db, "."); err != nil {
			setupErr = fmt.Errorf("failed to apply migrations: %w", err)
			return
		}
	})
	return setupErr
}

// WithTx runs a test function inside a transaction that is rolled back
// when the function returns, isolating the test's database changes.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	defer AssertRollbackNoError(t, tx)

	fn(t, tx)
}

// AssertRollbackNoError rolls back tx, tolerating sql.ErrTxDone for
// transactions that were already committed or rolled back.
func AssertRollbackNoError(t *testing.T, tx *sql.Tx) {
	t.Helper()
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		t.Logf("Failed to rollback transaction: %v", err)
	}
}

// AssertCloseNoError closes the database connection and logs any error.
func AssertCloseNoError(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}
