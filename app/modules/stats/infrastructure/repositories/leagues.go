package statsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/hoopstats/db/bundb"
	"github.com/uptrace/bun"
)

const (
	playerLeagueJoin = "JOIN game_league AS gl ON gl.game_date = ps.game_date AND (gl.team1 = ps.team OR gl.team2 = ps.team)"
	teamLeagueJoin   = "JOIN game_league AS gl ON gl.game_date = ts.game_date AND (gl.team1 = ts.team OR gl.team2 = ts.team)"
)

// CreateLeague inserts a league and returns it with its id and creation time.
func (r *Impl) CreateLeague(ctx context.Context, db bun.IDB, name string) (*League, error) {
	db = r.resolveDB(db)
	league := &League{LeagueName: name}
	_, err := db.NewInsert().
		Model(league).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if bundb.IsUniqueViolation(err) {
			return nil, ErrDuplicateLeagueName
		}
		return nil, fmt.Errorf("statsdb.CreateLeague: %w", err)
	}
	return league, nil
}

// ListLeagues returns all leagues, newest first.
func (r *Impl) ListLeagues(ctx context.Context, db bun.IDB) ([]League, error) {
	db = r.resolveDB(db)
	var leagues []League
	err := db.NewSelect().
		Model(&leagues).
		Order("created_at DESC", "league_id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("statsdb.ListLeagues: %w", err)
	}
	return leagues, nil
}

// GetLeague retrieves a league by id.
func (r *Impl) GetLeague(ctx context.Context, db bun.IDB, leagueID int64) (*League, error) {
	db = r.resolveDB(db)
	league := new(League)
	err := db.NewSelect().
		Model(league).
		Where("league_id = ?", leagueID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("statsdb.GetLeague: %w", err)
	}
	return league, nil
}

// GetGameLeagueIDs returns the distinct leagues holding the game in either team order.
func (r *Impl) GetGameLeagueIDs(ctx context.Context, db bun.IDB, date, teamA, teamB string) ([]int64, error) {
	db = r.resolveDB(db)
	var ids []int64
	err := db.NewSelect().
		Model((*GameLeague)(nil)).
		ColumnExpr("DISTINCT league_id").
		Where("game_date = ?", date).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("team1 = ? AND team2 = ?", teamA, teamB).
				WhereOr("team1 = ? AND team2 = ?", teamB, teamA)
		}).
		OrderExpr("league_id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetGameLeagueIDs: %w", err)
	}
	return ids, nil
}

// AssignGameToLeague inserts or replaces the league assignment of a game.
// An assignment stored with the teams in the opposite order is replaced as well.
func (r *Impl) AssignGameToLeague(ctx context.Context, db bun.IDB, assignment *GameLeague) error {
	db = r.resolveDB(db)
	_, err := db.NewDelete().
		Model((*GameLeague)(nil)).
		Where("game_date = ?", assignment.GameDate).
		Where("team1 = ?", assignment.Team2).
		Where("team2 = ?", assignment.Team1).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("statsdb.AssignGameToLeague: %w", err)
	}

	_, err = db.NewInsert().
		Model(assignment).
		On("CONFLICT (game_date, team1, team2) DO UPDATE").
		Set("league_id = EXCLUDED.league_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("statsdb.AssignGameToLeague: %w", err)
	}
	return nil
}

// GetLeaguePlayerStats returns every player line of the league's games.
func (r *Impl) GetLeaguePlayerStats(ctx context.Context, db bun.IDB, leagueID int64) ([]PlayerStat, error) {
	db = r.resolveDB(db)
	var rows []PlayerStat
	err := db.NewSelect().
		Model(&rows).
		Join(playerLeagueJoin).
		Where("gl.league_id = ?", leagueID).
		OrderExpr("ps.game_date ASC, ps.team ASC, ps.player_number ASC, ps.player ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetLeaguePlayerStats: %w", err)
	}
	return rows, nil
}

// GetLeagueGameResults returns final scores of the league's games, oldest first.
// Games missing either team's totals are skipped.
func (r *Impl) GetLeagueGameResults(ctx context.Context, db bun.IDB, leagueID int64) ([]GameResult, error) {
	db = r.resolveDB(db)
	var games []GameResult
	err := db.NewSelect().
		TableExpr("game_league AS gl").
		ColumnExpr("gl.game_date, gl.team1, gl.team2").
		ColumnExpr("t1.total_score AS team1_score").
		ColumnExpr("t2.total_score AS team2_score").
		Join("JOIN team_stats AS t1 ON t1.game_date = gl.game_date AND t1.team = gl.team1").
		Join("JOIN team_stats AS t2 ON t2.game_date = gl.game_date AND t2.team = gl.team2").
		Where("gl.league_id = ?", leagueID).
		OrderExpr("gl.game_date ASC, gl.team1 ASC, gl.team2 ASC").
		Scan(ctx, &games)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetLeagueGameResults: %w", err)
	}
	return games, nil
}

// GetLeagueGames returns the league scoreboard, newest first, with player lines ordered by jersey number.
func (r *Impl) GetLeagueGames(ctx context.Context, db bun.IDB, leagueID int64) ([]LeagueGame, error) {
	db = r.resolveDB(db)

	var assignments []GameLeague
	err := db.NewSelect().
		Model(&assignments).
		Where("league_id = ?", leagueID).
		Order("game_date DESC", "team1 ASC", "team2 ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetLeagueGames: %w", err)
	}
	if len(assignments) == 0 {
		return []LeagueGame{}, nil
	}

	var totals []TeamStat
	err = db.NewSelect().
		Model(&totals).
		Join(teamLeagueJoin).
		Where("gl.league_id = ?", leagueID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetLeagueGames: %w", err)
	}

	players, err := r.GetLeaguePlayerStats(ctx, db, leagueID)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetLeagueGames: %w", err)
	}

	type key struct{ date, team string }
	totalsByTeam := make(map[key]TeamStat, len(totals))
	for _, t := range totals {
		totalsByTeam[key{t.GameDate, t.Team}] = t
	}
	playersByTeam := make(map[key][]PlayerStat)
	for _, p := range players {
		k := key{p.GameDate, p.Team}
		playersByTeam[k] = append(playersByTeam[k], p)
	}

	games := make([]LeagueGame, 0, len(assignments))
	for _, a := range assignments {
		t1, ok1 := totalsByTeam[key{a.GameDate, a.Team1}]
		t2, ok2 := totalsByTeam[key{a.GameDate, a.Team2}]
		if !ok1 || !ok2 {
			continue
		}
		games = append(games, LeagueGame{
			GameDate:     a.GameDate,
			Team1:        t1,
			Team2:        t2,
			Team1Players: playersByTeam[key{a.GameDate, a.Team1}],
			Team2Players: playersByTeam[key{a.GameDate, a.Team2}],
		})
	}
	return games, nil
}

// GetLeaguePlayers returns the distinct players of a league ordered by team then name.
func (r *Impl) GetLeaguePlayers(ctx context.Context, db bun.IDB, leagueID int64) ([]PlayerRef, error) {
	db = r.resolveDB(db)
	var refs []PlayerRef
	err := db.NewSelect().
		TableExpr("player_stats AS ps").
		ColumnExpr("DISTINCT ps.player, ps.team").
		Join(playerLeagueJoin).
		Where("gl.league_id = ?", leagueID).
		OrderExpr("ps.team ASC, ps.player ASC").
		Scan(ctx, &refs)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetLeaguePlayers: %w", err)
	}
	return refs, nil
}
