package statsservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/app/shared/results"
	"github.com/uptrace/bun"
)

type createdLeague struct {
	league  statsdb.League
	created bool
}

// CreateLeague creates a league. It returns false when the name is already taken.
func (s *StatsService) CreateLeague(ctx context.Context, name string) (statsdb.League, bool, error) {
	name = strings.TrimSpace(name)
	result, err := withTelemetry(s, ctx, "CreateLeague", name, func(ctx context.Context) (results.OperationResult[createdLeague, error], error) {
		if name == "" {
			return results.FailureResult[createdLeague, error](ErrInvalidLeagueName), nil
		}
		return runInTx(s, ctx, "CreateLeague", func(ctx context.Context, db bun.IDB) (results.OperationResult[createdLeague, error], error) {
			league, err := s.repo.CreateLeague(ctx, db, name)
			if err != nil {
				if errors.Is(err, statsdb.ErrDuplicateLeagueName) {
					return results.SuccessResult[createdLeague, error](createdLeague{}), nil
				}
				return results.OperationResult[createdLeague, error]{}, err
			}
			return results.SuccessResult[createdLeague, error](createdLeague{league: *league, created: true}), nil
		})
	})
	out, err := unwrap(result, err)
	return out.league, out.created, err
}

// ListLeagues returns all leagues, newest first.
func (s *StatsService) ListLeagues(ctx context.Context) ([]statsdb.League, error) {
	return readQuery(s, ctx, "ListLeagues", "", func(ctx context.Context) ([]statsdb.League, error) {
		return s.repo.ListLeagues(ctx, nil)
	})
}

// GetLeague returns ErrLeagueNotFound for an unknown id.
func (s *StatsService) GetLeague(ctx context.Context, leagueID int64) (statsdb.League, error) {
	subject := strconv.FormatInt(leagueID, 10)
	result, err := withTelemetry(s, ctx, "GetLeague", subject, func(ctx context.Context) (results.OperationResult[statsdb.League, error], error) {
		return runRead(s, ctx, "GetLeague", func(ctx context.Context) (results.OperationResult[statsdb.League, error], error) {
			return s.lookupLeague(ctx, nil, leagueID)
		})
	})
	return unwrap(result, err)
}

func (s *StatsService) lookupLeague(ctx context.Context, db bun.IDB, leagueID int64) (results.OperationResult[statsdb.League, error], error) {
	league, err := s.repo.GetLeague(ctx, db, leagueID)
	if err != nil {
		if errors.Is(err, statsdb.ErrNotFound) {
			return results.FailureResult[statsdb.League, error](fmt.Errorf("%w: %d", ErrLeagueNotFound, leagueID)), nil
		}
		return results.OperationResult[statsdb.League, error]{}, err
	}
	return results.SuccessResult[statsdb.League, error](*league), nil
}

// GetLeagueGames returns the league scoreboard, newest first.
func (s *StatsService) GetLeagueGames(ctx context.Context, leagueID int64) ([]statsdb.LeagueGame, error) {
	return readQuery(s, ctx, "GetLeagueGames", strconv.FormatInt(leagueID, 10), func(ctx context.Context) ([]statsdb.LeagueGame, error) {
		return s.repo.GetLeagueGames(ctx, nil, leagueID)
	})
}

// GetLeaguePlayers returns the distinct players of a league.
func (s *StatsService) GetLeaguePlayers(ctx context.Context, leagueID int64) ([]statsdb.PlayerRef, error) {
	return readQuery(s, ctx, "GetLeaguePlayers", strconv.FormatInt(leagueID, 10), func(ctx context.Context) ([]statsdb.PlayerRef, error) {
		return s.repo.GetLeaguePlayers(ctx, nil, leagueID)
	})
}

// GetPlayerTeams returns the teams a player appeared for in a league.
func (s *StatsService) GetPlayerTeams(ctx context.Context, player string, leagueID int64) ([]string, error) {
	return readQuery(s, ctx, "GetPlayerTeams", player, func(ctx context.Context) ([]string, error) {
		return s.repo.GetPlayerTeams(ctx, nil, player, leagueID)
	})
}

// GetPlayerGames returns a player's league game log, newest first.
func (s *StatsService) GetPlayerGames(ctx context.Context, player string, leagueID int64) ([]statsdb.PlayerGame, error) {
	return readQuery(s, ctx, "GetPlayerGames", player, func(ctx context.Context) ([]statsdb.PlayerGame, error) {
		return s.repo.GetPlayerGames(ctx, nil, player, leagueID)
	})
}

// GetPlayerGameStat returns a player's line for one game, or nil when there is none.
func (s *StatsService) GetPlayerGameStat(ctx context.Context, player, date string) (*statsdb.PlayerStat, error) {
	return readQuery(s, ctx, "GetPlayerGameStat", player, func(ctx context.Context) (*statsdb.PlayerStat, error) {
		stat, err := s.repo.GetPlayerGameStat(ctx, nil, player, date)
		if errors.Is(err, statsdb.ErrNotFound) {
			return nil, nil
		}
		return stat, err
	})
}
