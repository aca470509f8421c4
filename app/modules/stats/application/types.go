package statsservice

// StatKey selects the statistic a player ranking is ordered by.
type StatKey string

const (
	StatPoints      StatKey = "points"
	StatRebounds    StatKey = "rebounds"
	StatAssists     StatKey = "assists"
	StatSteals      StatKey = "steals"
	StatBlocks      StatKey = "blocks"
	StatThreePoints StatKey = "three_points"
	StatFreeThrows  StatKey = "free_throws"
	StatEfficiency  StatKey = "efficiency"
	StatTurnovers   StatKey = "turnovers"
	StatMinutes     StatKey = "minutes"
)

// StatKeys lists every supported ranking statistic.
var StatKeys = []StatKey{
	StatPoints, StatRebounds, StatAssists, StatSteals, StatBlocks,
	StatThreePoints, StatFreeThrows, StatEfficiency, StatTurnovers, StatMinutes,
}

// Valid reports whether k is a supported statistic.
func (k StatKey) Valid() bool {
	for _, known := range StatKeys {
		if k == known {
			return true
		}
	}
	return false
}

// CareerStats aggregates a player's lines across games.
// Percentages are computed from made/attempt totals and are 0 when nothing was attempted.
type CareerStats struct {
	Player      string `json:"player"`
	Team        string `json:"team,omitempty"`
	GamesPlayed int    `json:"games_played"`

	TotalPoints        int     `json:"total_points"`
	TotalRebounds      int     `json:"total_rebounds"`
	TotalOffRebounds   int     `json:"total_offensive_rebounds"`
	TotalDefRebounds   int     `json:"total_defensive_rebounds"`
	TotalAssists       int     `json:"total_assists"`
	TotalSteals        int     `json:"total_steals"`
	TotalBlocks        int     `json:"total_blocks"`
	TotalTurnovers     int     `json:"total_turnovers"`
	TotalFouls         int     `json:"total_fouls"`
	TotalEfficiency    float64 `json:"total_efficiency"`
	TotalMinutes       float64 `json:"total_minutes"`
	TwoPointsMade      int     `json:"two_points_made"`
	TwoPointsAttempt   int     `json:"two_points_attempt"`
	ThreePointsMade    int     `json:"three_points_made"`
	ThreePointsAttempt int     `json:"three_points_attempt"`
	FieldGoalsMade     int     `json:"field_goals_made"`
	FieldGoalsAttempt  int     `json:"field_goals_attempt"`
	FreeThrowsMade     int     `json:"free_throws_made"`
	FreeThrowsAttempt  int     `json:"free_throws_attempt"`

	AvgPoints     float64 `json:"avg_points"`
	AvgRebounds   float64 `json:"avg_rebounds"`
	AvgAssists    float64 `json:"avg_assists"`
	AvgSteals     float64 `json:"avg_steals"`
	AvgBlocks     float64 `json:"avg_blocks"`
	AvgTurnovers  float64 `json:"avg_turnovers"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	AvgMinutes    float64 `json:"avg_minutes"`

	FieldGoalPct  float64 `json:"field_goal_pct"`
	TwoPointPct   float64 `json:"two_point_pct"`
	ThreePointPct float64 `json:"three_point_pct"`
	FreeThrowPct  float64 `json:"free_throw_pct"`
}

// PlayerRanking is one row of a league player ranking.
type PlayerRanking struct {
	Rank        int         `json:"rank"`
	Player      string      `json:"player"`
	Team        string      `json:"team"`
	GamesPlayed int         `json:"games_played"`
	Total       float64     `json:"total"`
	PerGame     float64     `json:"per_game"`
	Stats       CareerStats `json:"stats"`
}

// TeamRanking is one row of a league standings table.
type TeamRanking struct {
	Rank             int     `json:"rank"`
	Team             string  `json:"team"`
	GamesPlayed      int     `json:"games_played"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Draws            int     `json:"draws"`
	WinPct           float64 `json:"win_pct"`
	PointsFor        int     `json:"points_for"`
	PointsAgainst    int     `json:"points_against"`
	AvgPointsFor     float64 `json:"avg_points_for"`
	AvgPointsAgainst float64 `json:"avg_points_against"`
	AvgDifferential  float64 `json:"avg_differential"`
	LastFive         string  `json:"last_five"`
}

// GameAssignment names a game and the league it belongs to.
type GameAssignment struct {
	GameDate string
	TeamA    string
	TeamB    string
	LeagueID int64
}

// TrendPoint is one game's value of a statistic for a player.
type TrendPoint struct {
	GameDate string  `json:"game_date"`
	Value    float64 `json:"value"`
}

// gameKey identifies a game in logs and spans.
func gameKey(date, teamA, teamB string) string {
	return date + " " + teamA + " vs " + teamB
}
