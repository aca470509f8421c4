package statsservice

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/app/shared/results"
)

const lastFiveWidth = 5

// GetPlayerRankings ranks a league's players by the per-game average of key.
// Ties fall back to the total, games played, player name and team name, in that order.
func (s *StatsService) GetPlayerRankings(ctx context.Context, leagueID int64, key StatKey) ([]PlayerRanking, error) {
	subject := strconv.FormatInt(leagueID, 10) + "/" + string(key)
	result, err := withTelemetry(s, ctx, "GetPlayerRankings", subject, func(ctx context.Context) (results.OperationResult[[]PlayerRanking, error], error) {
		if !key.Valid() {
			return results.FailureResult[[]PlayerRanking, error](fmt.Errorf("%w: %q", ErrUnknownStatKey, key)), nil
		}
		return runRead(s, ctx, "GetPlayerRankings", func(ctx context.Context) (results.OperationResult[[]PlayerRanking, error], error) {
			rankings, err := cached(s, ctx, leagueID, "players:"+string(key), func() ([]PlayerRanking, error) {
				lines, err := s.repo.GetLeaguePlayerStats(ctx, nil, leagueID)
				if err != nil {
					return nil, err
				}
				return rankPlayers(lines, key), nil
			})
			if err != nil {
				return results.OperationResult[[]PlayerRanking, error]{}, err
			}
			return results.SuccessResult[[]PlayerRanking, error](rankings), nil
		})
	})
	return unwrap(result, err)
}

// GetTeamRankings builds the league standings.
func (s *StatsService) GetTeamRankings(ctx context.Context, leagueID int64) ([]TeamRanking, error) {
	return readQuery(s, ctx, "GetTeamRankings", strconv.FormatInt(leagueID, 10), func(ctx context.Context) ([]TeamRanking, error) {
		return cached(s, ctx, leagueID, "teams", func() ([]TeamRanking, error) {
			games, err := s.repo.GetLeagueGameResults(ctx, nil, leagueID)
			if err != nil {
				return nil, err
			}
			return rankTeams(games), nil
		})
	})
}

func rankPlayers(lines []statsdb.PlayerStat, key StatKey) []PlayerRanking {
	type playerTeam struct{ player, team string }
	grouped := make(map[playerTeam][]statsdb.PlayerStat)
	for _, l := range lines {
		k := playerTeam{l.Player, l.Team}
		grouped[k] = append(grouped[k], l)
	}

	rankings := make([]PlayerRanking, 0, len(grouped))
	for k, group := range grouped {
		stats := aggregateLines(k.player, k.team, group)
		total := statTotal(stats, key)
		perGame := 0.0
		if stats.GamesPlayed > 0 {
			perGame = total / float64(stats.GamesPlayed)
		}
		rankings = append(rankings, PlayerRanking{
			Player:      k.player,
			Team:        k.team,
			GamesPlayed: stats.GamesPlayed,
			Total:       total,
			PerGame:     perGame,
			Stats:       stats,
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]
		if a.PerGame != b.PerGame {
			return a.PerGame > b.PerGame
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed > b.GamesPlayed
		}
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		return a.Team < b.Team
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

// rankTeams expects games ordered oldest first.
func rankTeams(games []statsdb.GameResult) []TeamRanking {
	type record struct {
		ranking TeamRanking
		results []byte
	}
	records := make(map[string]*record)
	get := func(team string) *record {
		r, ok := records[team]
		if !ok {
			r = &record{ranking: TeamRanking{Team: team}}
			records[team] = r
		}
		return r
	}
	play := func(team string, scored, conceded int) {
		r := get(team)
		r.ranking.GamesPlayed++
		r.ranking.PointsFor += scored
		r.ranking.PointsAgainst += conceded
		switch {
		case scored > conceded:
			r.ranking.Wins++
			r.results = append(r.results, 'W')
		case scored < conceded:
			r.ranking.Losses++
			r.results = append(r.results, 'L')
		default:
			r.ranking.Draws++
			r.results = append(r.results, 'D')
		}
	}

	for _, g := range games {
		play(g.Team1, g.Team1Score, g.Team2Score)
		play(g.Team2, g.Team2Score, g.Team1Score)
	}

	rankings := make([]TeamRanking, 0, len(records))
	for _, r := range records {
		t := r.ranking
		n := float64(t.GamesPlayed)
		t.WinPct = float64(t.Wins) / n
		t.AvgPointsFor = float64(t.PointsFor) / n
		t.AvgPointsAgainst = float64(t.PointsAgainst) / n
		t.AvgDifferential = float64(t.PointsFor-t.PointsAgainst) / n
		t.LastFive = lastFive(r.results)
		rankings = append(rankings, t)
	}

	sort.Slice(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]
		if a.WinPct != b.WinPct {
			return a.WinPct > b.WinPct
		}
		if a.AvgDifferential != b.AvgDifferential {
			return a.AvgDifferential > b.AvgDifferential
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Team < b.Team
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

// lastFive renders the most recent results oldest to newest, left-padded with '-'.
func lastFive(outcomes []byte) string {
	if len(outcomes) > lastFiveWidth {
		outcomes = outcomes[len(outcomes)-lastFiveWidth:]
	}
	return strings.Repeat("-", lastFiveWidth-len(outcomes)) + string(outcomes)
}
