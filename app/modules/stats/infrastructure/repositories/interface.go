package statsdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for box score persistence.
// Every method accepts a bun.IDB so callers can run it inside a transaction;
// a nil db falls back to the repository's connection.
//
// Error semantics:
//   - ErrNotFound: record does not exist
//   - ErrDuplicateLeagueName: league name already taken
//   - Other errors: infrastructure failures (lock contention, query errors)
type Repository interface {
	// GameExists reports whether team totals for either team are stored on date,
	// or the pair is assigned to a league on date in either order.
	GameExists(ctx context.Context, db bun.IDB, date, teamA, teamB string) (bool, error)

	// UpsertPlayerStats inserts player lines, overwriting rows with the same (game_date, team, player).
	UpsertPlayerStats(ctx context.Context, db bun.IDB, stats []*PlayerStat) error

	// UpsertTeamStats inserts team totals, overwriting rows with the same (game_date, team).
	UpsertTeamStats(ctx context.Context, db bun.IDB, stats []*TeamStat) error

	// UpsertPlayers creates master player records and refreshes the last seen jersey number.
	UpsertPlayers(ctx context.Context, db bun.IDB, players []*Player) error

	// CreateLeague inserts a league. Returns ErrDuplicateLeagueName if the name exists.
	CreateLeague(ctx context.Context, db bun.IDB, name string) (*League, error)

	// ListLeagues returns all leagues, newest first.
	ListLeagues(ctx context.Context, db bun.IDB) ([]League, error)

	// GetLeague returns ErrNotFound for an unknown id.
	GetLeague(ctx context.Context, db bun.IDB, leagueID int64) (*League, error)

	// GetGameLeagueIDs returns the leagues the game is currently assigned to, in either team order.
	GetGameLeagueIDs(ctx context.Context, db bun.IDB, date, teamA, teamB string) ([]int64, error)

	// AssignGameToLeague inserts or replaces the league assignment of a game.
	AssignGameToLeague(ctx context.Context, db bun.IDB, assignment *GameLeague) error

	// GetPlayerStatLines returns every stored line for the player, oldest first.
	// An empty team covers every team.
	GetPlayerStatLines(ctx context.Context, db bun.IDB, player, team string) ([]PlayerStat, error)

	// GetLeaguePlayerStats returns every player line of the league's games.
	GetLeaguePlayerStats(ctx context.Context, db bun.IDB, leagueID int64) ([]PlayerStat, error)

	// GetLeagueGameResults returns final scores of the league's games, oldest first.
	GetLeagueGameResults(ctx context.Context, db bun.IDB, leagueID int64) ([]GameResult, error)

	// GetLeagueGames returns the league scoreboard, newest first.
	GetLeagueGames(ctx context.Context, db bun.IDB, leagueID int64) ([]LeagueGame, error)

	// GetGamePlayers returns a team's player lines for one game ordered by jersey number.
	GetGamePlayers(ctx context.Context, db bun.IDB, date, team string) ([]PlayerStat, error)

	// GetLeaguePlayers returns the distinct players of a league ordered by team then name.
	GetLeaguePlayers(ctx context.Context, db bun.IDB, leagueID int64) ([]PlayerRef, error)

	// GetPlayerTeams returns the teams the player appeared for in the league.
	GetPlayerTeams(ctx context.Context, db bun.IDB, player string, leagueID int64) ([]string, error)

	// GetPlayerGames returns the player's league games with both scores, newest first.
	GetPlayerGames(ctx context.Context, db bun.IDB, player string, leagueID int64) ([]PlayerGame, error)

	// GetPlayerGameStat returns ErrNotFound if the player has no line on date.
	GetPlayerGameStat(ctx context.Context, db bun.IDB, player, date string) (*PlayerStat, error)
}
