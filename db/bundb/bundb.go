package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Black-And-White-Club/hoopstats/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

// Open returns a bun.DB backed by modernc.org/sqlite. Every pooled connection runs in
// WAL mode with a busy timeout, and write transactions take the lock at BEGIN.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*bun.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqldb, err := sql.Open("sqlite", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// DSN builds the modernc.org/sqlite connection string for cfg.
func DSN(cfg config.DatabaseConfig) string {
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	if mode := strings.TrimSpace(cfg.JournalMode); mode != "" {
		params.Add("_pragma", fmt.Sprintf("journal_mode(%s)", strings.ToUpper(mode)))
	}
	params.Add("_pragma", "foreign_keys(1)")
	params.Set("_txlock", "immediate")

	return "file:" + cfg.Path + "?" + params.Encode()
}
