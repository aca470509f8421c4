package db

import (
	"context"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/config"
	"github.com/Black-And-White-Club/hoopstats/db/bundb"
	"github.com/uptrace/bun"
)

// DBService owns the shared SQLite store and the repositories built on it.
type DBService struct {
	StatsDB statsdb.Repository
	db      *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// Close closes the connection pool.
func (dbService *DBService) Close() error {
	return dbService.db.Close()
}

// NewDBService opens the store described by cfg and wires the repositories.
func NewDBService(ctx context.Context, cfg config.DatabaseConfig) (*DBService, error) {
	db, err := bundb.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db.RegisterModel(
		(*statsdb.PlayerStat)(nil),
		(*statsdb.TeamStat)(nil),
		(*statsdb.League)(nil),
		(*statsdb.GameLeague)(nil),
		(*statsdb.Player)(nil),
	)

	return &DBService{
		StatsDB: statsdb.NewRepository(db),
		db:      db,
	}, nil
}
