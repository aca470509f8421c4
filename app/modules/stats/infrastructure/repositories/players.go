package statsdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// UpsertPlayers creates master player records and refreshes the last seen jersey number.
func (r *Impl) UpsertPlayers(ctx context.Context, db bun.IDB, players []*Player) error {
	if len(players) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&players).
		On("CONFLICT (player_name, team) DO UPDATE").
		Set("player_number = EXCLUDED.player_number").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("statsdb.UpsertPlayers: %w", err)
	}
	return nil
}

// GetPlayerStatLines returns every stored line for the player, oldest first.
// An empty team covers every team the player appeared for.
func (r *Impl) GetPlayerStatLines(ctx context.Context, db bun.IDB, player, team string) ([]PlayerStat, error) {
	db = r.resolveDB(db)
	var rows []PlayerStat
	q := db.NewSelect().
		Model(&rows).
		Where("player = ?", player)
	if team != "" {
		q = q.Where("team = ?", team)
	}
	err := q.Order("game_date ASC", "team ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetPlayerStatLines: %w", err)
	}
	return rows, nil
}

// GetPlayerTeams returns the teams the player appeared for in the league.
func (r *Impl) GetPlayerTeams(ctx context.Context, db bun.IDB, player string, leagueID int64) ([]string, error) {
	db = r.resolveDB(db)
	var teams []string
	err := db.NewSelect().
		TableExpr("player_stats AS ps").
		ColumnExpr("DISTINCT ps.team").
		Join(playerLeagueJoin).
		Where("ps.player = ?", player).
		Where("gl.league_id = ?", leagueID).
		OrderExpr("ps.team ASC").
		Scan(ctx, &teams)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetPlayerTeams: %w", err)
	}
	return teams, nil
}

// GetPlayerGames returns the player's league games with both scores, newest first.
func (r *Impl) GetPlayerGames(ctx context.Context, db bun.IDB, player string, leagueID int64) ([]PlayerGame, error) {
	db = r.resolveDB(db)
	var games []PlayerGame
	err := db.NewSelect().
		TableExpr("player_stats AS ps").
		ColumnExpr("ps.game_date, ps.team, gl.team1, gl.team2").
		ColumnExpr("COALESCE(t1.total_score, 0) AS team1_score").
		ColumnExpr("COALESCE(t2.total_score, 0) AS team2_score").
		Join(playerLeagueJoin).
		Join("LEFT JOIN team_stats AS t1 ON t1.game_date = gl.game_date AND t1.team = gl.team1").
		Join("LEFT JOIN team_stats AS t2 ON t2.game_date = gl.game_date AND t2.team = gl.team2").
		Where("ps.player = ?", player).
		Where("gl.league_id = ?", leagueID).
		OrderExpr("ps.game_date DESC, ps.team ASC").
		Scan(ctx, &games)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetPlayerGames: %w", err)
	}
	for i := range games {
		g := &games[i]
		g.Label = fmt.Sprintf("%s %s %d vs %d %s", g.GameDate, g.Team1, g.Team1Score, g.Team2Score, g.Team2)
	}
	return games, nil
}
