package statsservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/app/shared/results"
	"github.com/uptrace/bun"
)

// GameExists reports whether the game is already stored or assigned to a league.
func (s *StatsService) GameExists(ctx context.Context, date, teamA, teamB string) (bool, error) {
	result, err := withTelemetry(s, ctx, "GameExists", gameKey(date, teamA, teamB), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runRead(s, ctx, "GameExists", func(ctx context.Context) (results.OperationResult[bool, error], error) {
			exists, err := s.repo.GameExists(ctx, nil, date, teamA, teamB)
			if err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			return results.SuccessResult[bool, error](exists), nil
		})
	})
	return unwrap(result, err)
}

// SaveGame writes both teams' player lines and totals plus the master player records in
// one write transaction. It returns false, without writing, when the game already exists.
func (s *StatsService) SaveGame(ctx context.Context, game statsdb.GameRecord) (bool, error) {
	key := gameKey(game.GameDate, game.TeamA, game.TeamB)
	result, err := withTelemetry(s, ctx, "SaveGame", key, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		if err := validateGame(game); err != nil {
			return results.FailureResult[bool, error](err), nil
		}

		return runInTx(s, ctx, "SaveGame", func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			exists, err := s.repo.GameExists(ctx, db, game.GameDate, game.TeamA, game.TeamB)
			if err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			if exists {
				s.logger.InfoContext(ctx, "Game already stored, skipping", slog.String("game", key))
				return results.SuccessResult[bool, error](false), nil
			}

			lines := make([]*statsdb.PlayerStat, 0, len(game.TeamAPlayers)+len(game.TeamBPlayers))
			lines = append(lines, game.TeamAPlayers...)
			lines = append(lines, game.TeamBPlayers...)

			if err := s.repo.UpsertPlayerStats(ctx, db, lines); err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			if err := s.repo.UpsertTeamStats(ctx, db, []*statsdb.TeamStat{game.TeamATotal, game.TeamBTotal}); err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			if err := s.repo.UpsertPlayers(ctx, db, masterPlayers(lines)); err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			return results.SuccessResult[bool, error](true), nil
		})
	})
	return unwrap(result, err)
}

// AssignGameToLeague records which league a stored game belongs to. Cached rankings are dropped
// for the new league and for every league that held the game before.
func (s *StatsService) AssignGameToLeague(ctx context.Context, assignment GameAssignment) error {
	key := gameKey(assignment.GameDate, assignment.TeamA, assignment.TeamB)
	result, err := withTelemetry(s, ctx, "AssignGameToLeague", key, func(ctx context.Context) (results.OperationResult[[]int64, error], error) {
		return runInTx(s, ctx, "AssignGameToLeague", func(ctx context.Context, db bun.IDB) (results.OperationResult[[]int64, error], error) {
			if _, err := s.repo.GetLeague(ctx, db, assignment.LeagueID); err != nil {
				if errors.Is(err, statsdb.ErrNotFound) {
					return results.FailureResult[[]int64, error](fmt.Errorf("%w: %d", ErrLeagueNotFound, assignment.LeagueID)), nil
				}
				return results.OperationResult[[]int64, error]{}, err
			}
			exists, err := s.repo.GameExists(ctx, db, assignment.GameDate, assignment.TeamA, assignment.TeamB)
			if err != nil {
				return results.OperationResult[[]int64, error]{}, err
			}
			if !exists {
				return results.FailureResult[[]int64, error](fmt.Errorf("%w: %s", ErrGameNotFound, key)), nil
			}
			previous, err := s.repo.GetGameLeagueIDs(ctx, db, assignment.GameDate, assignment.TeamA, assignment.TeamB)
			if err != nil {
				return results.OperationResult[[]int64, error]{}, err
			}
			err = s.repo.AssignGameToLeague(ctx, db, &statsdb.GameLeague{
				GameDate: assignment.GameDate,
				Team1:    assignment.TeamA,
				Team2:    assignment.TeamB,
				LeagueID: assignment.LeagueID,
			})
			if err != nil {
				return results.OperationResult[[]int64, error]{}, err
			}
			return results.SuccessResult[[]int64, error](affectedLeagues(assignment.LeagueID, previous)), nil
		})
	})
	affected, err := unwrap(result, err)
	if err != nil {
		return err
	}

	for _, leagueID := range affected {
		if err := s.cache.Invalidate(ctx, leagueID); err != nil {
			s.logger.WarnContext(ctx, "Ranking cache invalidation failed",
				slog.Int64("league_id", leagueID),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

// affectedLeagues returns target followed by every distinct previous league other than target.
func affectedLeagues(target int64, previous []int64) []int64 {
	out := []int64{target}
	for _, id := range previous {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// GetGameLeagueIDs returns the leagues a game is assigned to, in either team order.
func (s *StatsService) GetGameLeagueIDs(ctx context.Context, date, teamA, teamB string) ([]int64, error) {
	return readQuery(s, ctx, "GetGameLeagueIDs", gameKey(date, teamA, teamB), func(ctx context.Context) ([]int64, error) {
		return s.repo.GetGameLeagueIDs(ctx, nil, date, teamA, teamB)
	})
}

func validateGame(game statsdb.GameRecord) error {
	switch {
	case strings.TrimSpace(game.GameDate) == "":
		return fmt.Errorf("%w: missing game date", ErrInvalidGameRecord)
	case strings.TrimSpace(game.TeamA) == "" || strings.TrimSpace(game.TeamB) == "":
		return fmt.Errorf("%w: missing team name", ErrInvalidGameRecord)
	case game.TeamA == game.TeamB:
		return fmt.Errorf("%w: a team cannot play itself", ErrInvalidGameRecord)
	case game.TeamATotal == nil || game.TeamBTotal == nil:
		return fmt.Errorf("%w: missing team totals", ErrInvalidGameRecord)
	}
	return nil
}

// masterPlayers derives one master record per player and team, keeping the last jersey number seen.
func masterPlayers(lines []*statsdb.PlayerStat) []*statsdb.Player {
	type key struct{ name, team string }
	index := make(map[key]int, len(lines))
	players := make([]*statsdb.Player, 0, len(lines))
	for _, l := range lines {
		k := key{l.Player, l.Team}
		if i, ok := index[k]; ok {
			players[i].PlayerNumber = l.PlayerNumber
			continue
		}
		index[k] = len(players)
		players = append(players, &statsdb.Player{
			PlayerName:   l.Player,
			Team:         l.Team,
			PlayerNumber: l.PlayerNumber,
		})
	}
	return players
}
