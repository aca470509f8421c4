package ingestservice

import (
	"context"

	"github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application/parsers"
	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
)

// Service turns box score files into stored games.
type Service interface {
	LoadGameData(ctx context.Context, path string) (*parsers.GameSheets, error)
	IngestFile(ctx context.Context, path string, leagueID int64) (IngestResult, error)
}

// GameStore is the part of the stats service ingestion writes through.
type GameStore interface {
	GameExists(ctx context.Context, date, teamA, teamB string) (bool, error)
	SaveGame(ctx context.Context, game statsdb.GameRecord) (bool, error)
	AssignGameToLeague(ctx context.Context, assignment statsservice.GameAssignment) error
	GetGameLeagueIDs(ctx context.Context, date, teamA, teamB string) ([]int64, error)
	GetLeague(ctx context.Context, leagueID int64) (statsdb.League, error)
}

var (
	_ Service   = (*IngestService)(nil)
	_ GameStore = (*statsservice.StatsService)(nil)
)
