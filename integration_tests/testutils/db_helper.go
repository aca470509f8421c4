package testutils

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	statsmigrations "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/hoopstats/config"
	"github.com/Black-And-White-Club/hoopstats/db/bundb"
	"github.com/uptrace/bun"
)

// TestDatabaseConfig returns a store configuration pointing at a fresh file in a temp dir.
func TestDatabaseConfig(t testing.TB) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "stats.db"),
		BusyTimeout: 5 * time.Second,
		JournalMode: "WAL",
	}
}

// NewTestDB opens a migrated SQLite store that is closed when the test ends.
func NewTestDB(t testing.TB) *bun.DB {
	t.Helper()
	return OpenTestDB(t, TestDatabaseConfig(t))
}

// OpenTestDB opens and migrates the store described by cfg.
func OpenTestDB(t testing.TB, cfg config.DatabaseConfig) *bun.DB {
	t.Helper()
	ctx := context.Background()

	db, err := bundb.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := statsmigrations.Apply(ctx, db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
