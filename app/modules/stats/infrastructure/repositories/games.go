package statsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

var playerStatUpdateColumns = []string{
	"player_number", "minutes", "points",
	"two_points_made", "two_points_attempt", "two_point_percentage",
	"three_points_made", "three_points_attempt", "three_point_percentage",
	"field_goals_made", "field_goals_attempt", "field_goal_percentage",
	"free_throws_made", "free_throws_attempt", "free_throw_percentage",
	"offensive_rebounds", "defensive_rebounds", "rebounds",
	"assists", "turnovers", "steals", "blocks", "fouls", "plus_minus", "efficiency",
}

var teamStatUpdateColumns = []string{
	"opponent", "q1_score", "q2_score", "q3_score", "q4_score", "total_score",
	"field_goals_made", "field_goals_attempt", "field_goal_percentage",
	"two_points_made", "two_points_attempt", "two_point_percentage",
	"three_points_made", "three_points_attempt", "three_point_percentage",
	"free_throws_made", "free_throws_attempt", "free_throw_percentage",
	"offensive_rebounds", "defensive_rebounds", "rebounds",
	"assists", "steals", "blocks", "turnovers", "fouls", "plus_minus",
}

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new stats repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func setExcluded(q *bun.InsertQuery, columns []string) *bun.InsertQuery {
	for _, c := range columns {
		q = q.Set(c + " = EXCLUDED." + c)
	}
	return q
}

// GameExists reports whether the game on date between teamA and teamB is already stored.
func (r *Impl) GameExists(ctx context.Context, db bun.IDB, date, teamA, teamB string) (bool, error) {
	db = r.resolveDB(db)

	stored, err := db.NewSelect().
		Model((*TeamStat)(nil)).
		Where("game_date = ?", date).
		Where("team IN (?)", bun.In([]string{teamA, teamB})).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("statsdb.GameExists: %w", err)
	}
	if stored {
		return true, nil
	}

	assigned, err := db.NewSelect().
		Model((*GameLeague)(nil)).
		Where("game_date = ?", date).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("team1 = ? AND team2 = ?", teamA, teamB).
				WhereOr("team1 = ? AND team2 = ?", teamB, teamA)
		}).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("statsdb.GameExists: %w", err)
	}
	return assigned, nil
}

// UpsertPlayerStats inserts player lines, overwriting existing rows for the same game, team and player.
func (r *Impl) UpsertPlayerStats(ctx context.Context, db bun.IDB, stats []*PlayerStat) error {
	if len(stats) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	q := db.NewInsert().
		Model(&stats).
		On("CONFLICT (game_date, team, player) DO UPDATE")
	if _, err := setExcluded(q, playerStatUpdateColumns).Exec(ctx); err != nil {
		return fmt.Errorf("statsdb.UpsertPlayerStats: %w", err)
	}
	return nil
}

// UpsertTeamStats inserts team totals, overwriting existing rows for the same game and team.
func (r *Impl) UpsertTeamStats(ctx context.Context, db bun.IDB, stats []*TeamStat) error {
	if len(stats) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	q := db.NewInsert().
		Model(&stats).
		On("CONFLICT (game_date, team) DO UPDATE")
	if _, err := setExcluded(q, teamStatUpdateColumns).Exec(ctx); err != nil {
		return fmt.Errorf("statsdb.UpsertTeamStats: %w", err)
	}
	return nil
}

// GetGamePlayers returns a team's player lines for one game ordered by jersey number.
func (r *Impl) GetGamePlayers(ctx context.Context, db bun.IDB, date, team string) ([]PlayerStat, error) {
	db = r.resolveDB(db)
	var rows []PlayerStat
	err := db.NewSelect().
		Model(&rows).
		Where("game_date = ?", date).
		Where("team = ?", team).
		Order("player_number ASC", "player ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("statsdb.GetGamePlayers: %w", err)
	}
	return rows, nil
}

// GetPlayerGameStat returns the player's line on date.
func (r *Impl) GetPlayerGameStat(ctx context.Context, db bun.IDB, player, date string) (*PlayerStat, error) {
	db = r.resolveDB(db)
	row := new(PlayerStat)
	err := db.NewSelect().
		Model(row).
		Where("player = ?", player).
		Where("game_date = ?", date).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("statsdb.GetPlayerGameStat: %w", err)
	}
	return row, nil
}
