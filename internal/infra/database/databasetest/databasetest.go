// Package databasetest provides throwaway databases for tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkrupp/messagely/internal/infra/database"
)

// NewSQLite opens a migrated SQLite database in a temporary directory.
// The database is closed when the test finishes.
func NewSQLite(tb testing.TB) *database.DB {
	tb.Helper()

	db, err := database.Open(context.Background(), database.Config{
		Driver:          database.DriverSQLite,
		DSN:             filepath.Join(tb.TempDir(), "messagely.db"),
		ConnMaxLifetime: time.Minute,
		BusyTimeout:     time.Second,
	})
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}

	tb.Cleanup(func() {
		if err := db.Close(); err != nil {
			tb.Errorf("close test database: %v", err)
		}
	})

	return db
}
