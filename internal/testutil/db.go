// Package testutil provides helpers for database-backed tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomasvik/geovisits/internal/database"
)

// OpenTestDB opens a throwaway sqlite database in a temp dir and applies the
// real migrations, so tests exercise the actual constraints and indexes.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrationManager(db, migrationsDir(t))
	require.NoError(t, migrator.RunMigrations())

	return db
}

// migrationsDir locates the repository's migrations directory relative to
// this source file
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "cannot locate migrations directory")
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations")
}
