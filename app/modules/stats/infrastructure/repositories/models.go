package statsdb

import (
	"time"

	"github.com/uptrace/bun"
)

// DateLayout is the storage format of game dates.
const DateLayout = "2006-01-02"

// PlayerStat is one player's box score line for one game.
// Percentage columns hold source text only when the attempt count cannot produce a ratio.
type PlayerStat struct {
	bun.BaseModel `bun:"table:player_stats,alias:ps"`

	GameDate     string `bun:"game_date,pk" json:"game_date"`
	Team         string `bun:"team,pk" json:"team"`
	Player       string `bun:"player,pk" json:"player"`
	PlayerNumber int    `bun:"player_number,notnull" json:"player_number"`
	Minutes      string `bun:"minutes,notnull,default:'0'" json:"minutes"`
	Points       int    `bun:"points,notnull" json:"points"`

	TwoPointsMade      int     `bun:"two_points_made,notnull" json:"two_points_made"`
	TwoPointsAttempt   int     `bun:"two_points_attempt,notnull" json:"two_points_attempt"`
	TwoPointPctText    string  `bun:"two_point_percentage,nullzero" json:"two_point_percentage,omitempty"`
	ThreePointsMade    int     `bun:"three_points_made,notnull" json:"three_points_made"`
	ThreePointsAttempt int     `bun:"three_points_attempt,notnull" json:"three_points_attempt"`
	ThreePointPctText  string  `bun:"three_point_percentage,nullzero" json:"three_point_percentage,omitempty"`
	FieldGoalsMade     int     `bun:"field_goals_made,notnull" json:"field_goals_made"`
	FieldGoalsAttempt  int     `bun:"field_goals_attempt,notnull" json:"field_goals_attempt"`
	FieldGoalPctText   string  `bun:"field_goal_percentage,nullzero" json:"field_goal_percentage,omitempty"`
	FreeThrowsMade     int     `bun:"free_throws_made,notnull" json:"free_throws_made"`
	FreeThrowsAttempt  int     `bun:"free_throws_attempt,notnull" json:"free_throws_attempt"`
	FreeThrowPctText   string  `bun:"free_throw_percentage,nullzero" json:"free_throw_percentage,omitempty"`
	OffensiveRebounds  int     `bun:"offensive_rebounds,notnull" json:"offensive_rebounds"`
	DefensiveRebounds  int     `bun:"defensive_rebounds,notnull" json:"defensive_rebounds"`
	Rebounds           int     `bun:"rebounds,notnull" json:"rebounds"`
	Assists            int     `bun:"assists,notnull" json:"assists"`
	Turnovers          int     `bun:"turnovers,notnull" json:"turnovers"`
	Steals             int     `bun:"steals,notnull" json:"steals"`
	Blocks             int     `bun:"blocks,notnull" json:"blocks"`
	Fouls              int     `bun:"fouls,notnull" json:"fouls"`
	PlusMinus          int     `bun:"plus_minus,notnull" json:"plus_minus"`
	Efficiency         float64 `bun:"efficiency,notnull" json:"efficiency"`
}

// TeamStat is one team's totals for one game.
type TeamStat struct {
	bun.BaseModel `bun:"table:team_stats,alias:ts"`

	GameDate   string `bun:"game_date,pk" json:"game_date"`
	Team       string `bun:"team,pk" json:"team"`
	Opponent   string `bun:"opponent,notnull" json:"opponent"`
	Q1Score    int    `bun:"q1_score,notnull,default:0" json:"q1_score"`
	Q2Score    int    `bun:"q2_score,notnull,default:0" json:"q2_score"`
	Q3Score    int    `bun:"q3_score,notnull,default:0" json:"q3_score"`
	Q4Score    int    `bun:"q4_score,notnull,default:0" json:"q4_score"`
	TotalScore int    `bun:"total_score,notnull" json:"total_score"`

	FieldGoalsMade     int    `bun:"field_goals_made,notnull" json:"field_goals_made"`
	FieldGoalsAttempt  int    `bun:"field_goals_attempt,notnull" json:"field_goals_attempt"`
	FieldGoalPctText   string `bun:"field_goal_percentage,nullzero" json:"field_goal_percentage,omitempty"`
	TwoPointsMade      int    `bun:"two_points_made,notnull" json:"two_points_made"`
	TwoPointsAttempt   int    `bun:"two_points_attempt,notnull" json:"two_points_attempt"`
	TwoPointPctText    string `bun:"two_point_percentage,nullzero" json:"two_point_percentage,omitempty"`
	ThreePointsMade    int    `bun:"three_points_made,notnull" json:"three_points_made"`
	ThreePointsAttempt int    `bun:"three_points_attempt,notnull" json:"three_points_attempt"`
	ThreePointPctText  string `bun:"three_point_percentage,nullzero" json:"three_point_percentage,omitempty"`
	FreeThrowsMade     int    `bun:"free_throws_made,notnull" json:"free_throws_made"`
	FreeThrowsAttempt  int    `bun:"free_throws_attempt,notnull" json:"free_throws_attempt"`
	FreeThrowPctText   string `bun:"free_throw_percentage,nullzero" json:"free_throw_percentage,omitempty"`
	OffensiveRebounds  int    `bun:"offensive_rebounds,notnull" json:"offensive_rebounds"`
	DefensiveRebounds  int    `bun:"defensive_rebounds,notnull" json:"defensive_rebounds"`
	Rebounds           int    `bun:"rebounds,notnull" json:"rebounds"`
	Assists            int    `bun:"assists,notnull" json:"assists"`
	Steals             int    `bun:"steals,notnull" json:"steals"`
	Blocks             int    `bun:"blocks,notnull" json:"blocks"`
	Turnovers          int    `bun:"turnovers,notnull" json:"turnovers"`
	Fouls              int    `bun:"fouls,notnull" json:"fouls"`
	PlusMinus          int    `bun:"plus_minus,notnull" json:"plus_minus"`
}

// League is a user-defined grouping of games.
type League struct {
	bun.BaseModel `bun:"table:leagues,alias:l"`

	LeagueID   int64     `bun:"league_id,pk,autoincrement" json:"league_id"`
	LeagueName string    `bun:"league_name,unique,notnull" json:"league_name"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// GameLeague assigns a game to exactly one league.
type GameLeague struct {
	bun.BaseModel `bun:"table:game_league,alias:gl"`

	GameDate string `bun:"game_date,pk" json:"game_date"`
	Team1    string `bun:"team1,pk" json:"team1"`
	Team2    string `bun:"team2,pk" json:"team2"`
	LeagueID int64  `bun:"league_id,notnull" json:"league_id"`
}

// Player is the master record of a player on a team.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	PlayerID     int64     `bun:"player_id,pk,autoincrement" json:"player_id"`
	PlayerName   string    `bun:"player_name,notnull,unique:players_name_team" json:"player_name"`
	Team         string    `bun:"team,unique:players_name_team" json:"team"`
	PlayerNumber int       `bun:"player_number" json:"player_number"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// GameRecord is a fully normalized game ready to be written in one transaction.
type GameRecord struct {
	GameDate     string
	TeamA        string
	TeamB        string
	TeamAPlayers []*PlayerStat
	TeamATotal   *TeamStat
	TeamBPlayers []*PlayerStat
	TeamBTotal   *TeamStat
}

// GameResult is the final score of one league game.
type GameResult struct {
	GameDate   string `bun:"game_date" json:"game_date"`
	Team1      string `bun:"team1" json:"team1"`
	Team2      string `bun:"team2" json:"team2"`
	Team1Score int    `bun:"team1_score" json:"team1_score"`
	Team2Score int    `bun:"team2_score" json:"team2_score"`
}

// PlayerRef identifies a player on a team.
type PlayerRef struct {
	Player string `bun:"player" json:"player"`
	Team   string `bun:"team" json:"team"`
}

// LeagueGame is a scoreboard entry: both teams' totals and player lines.
type LeagueGame struct {
	GameDate     string       `json:"game_date"`
	Team1        TeamStat     `json:"team1"`
	Team2        TeamStat     `json:"team2"`
	Team1Players []PlayerStat `json:"team1_players"`
	Team2Players []PlayerStat `json:"team2_players"`
}

// PlayerGame is one entry of a player's game log.
type PlayerGame struct {
	GameDate   string `bun:"game_date" json:"game_date"`
	Team       string `bun:"team" json:"team"`
	Team1      string `bun:"team1" json:"team1"`
	Team2      string `bun:"team2" json:"team2"`
	Team1Score int    `bun:"team1_score" json:"team1_score"`
	Team2Score int    `bun:"team2_score" json:"team2_score"`
	Label      string `bun:"-" json:"label"`
}
