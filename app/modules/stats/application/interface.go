package statsservice

import (
	"context"
	"io"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
)

// Service is the storage-facing API used by ingestion, the HTTP handlers and the CLI.
type Service interface {
	GameExists(ctx context.Context, date, teamA, teamB string) (bool, error)
	SaveGame(ctx context.Context, game statsdb.GameRecord) (bool, error)
	AssignGameToLeague(ctx context.Context, assignment GameAssignment) error
	GetGameLeagueIDs(ctx context.Context, date, teamA, teamB string) ([]int64, error)

	CreateLeague(ctx context.Context, name string) (statsdb.League, bool, error)
	ListLeagues(ctx context.Context) ([]statsdb.League, error)
	GetLeague(ctx context.Context, leagueID int64) (statsdb.League, error)

	GetPlayerCareerStats(ctx context.Context, player, team string) (*CareerStats, error)
	GetPlayerRankings(ctx context.Context, leagueID int64, key StatKey) ([]PlayerRanking, error)
	GetTeamRankings(ctx context.Context, leagueID int64) ([]TeamRanking, error)

	GetLeagueGames(ctx context.Context, leagueID int64) ([]statsdb.LeagueGame, error)
	GetLeaguePlayers(ctx context.Context, leagueID int64) ([]statsdb.PlayerRef, error)
	GetPlayerTeams(ctx context.Context, player string, leagueID int64) ([]string, error)
	GetPlayerGames(ctx context.Context, player string, leagueID int64) ([]statsdb.PlayerGame, error)
	GetPlayerGameStat(ctx context.Context, player, date string) (*statsdb.PlayerStat, error)

	GetPlayerTrend(ctx context.Context, player, team string, leagueID int64, key StatKey) ([]TrendPoint, error)
	RenderPlayerTrendChart(ctx context.Context, w io.Writer, player, team string, leagueID int64, key StatKey) error
}

var _ Service = (*StatsService)(nil)
