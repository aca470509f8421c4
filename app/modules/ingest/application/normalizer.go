package ingestservice

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application/parsers"
	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
)

// Field is a canonical box score statistic.
type Field string

const (
	FieldPlayer            Field = "player"
	FieldPlayerNumber      Field = "player_number"
	FieldMinutes           Field = "minutes"
	FieldPoints            Field = "points"
	FieldQ1                Field = "q1_score"
	FieldQ2                Field = "q2_score"
	FieldQ3                Field = "q3_score"
	FieldQ4                Field = "q4_score"
	FieldTwoPointsMade     Field = "two_points_made"
	FieldTwoPointsAttempt  Field = "two_points_attempt"
	FieldTwoPointPct       Field = "two_point_percentage"
	FieldThreePointsMade   Field = "three_points_made"
	FieldThreePointsAtt    Field = "three_points_attempt"
	FieldThreePointPct     Field = "three_point_percentage"
	FieldFieldGoalsMade    Field = "field_goals_made"
	FieldFieldGoalsAttempt Field = "field_goals_attempt"
	FieldFieldGoalPct      Field = "field_goal_percentage"
	FieldFreeThrowsMade    Field = "free_throws_made"
	FieldFreeThrowsAttempt Field = "free_throws_attempt"
	FieldFreeThrowPct      Field = "free_throw_percentage"
	FieldOffensiveRebounds Field = "offensive_rebounds"
	FieldDefensiveRebounds Field = "defensive_rebounds"
	FieldRebounds          Field = "rebounds"
	FieldAssists           Field = "assists"
	FieldTurnovers         Field = "turnovers"
	FieldSteals            Field = "steals"
	FieldBlocks            Field = "blocks"
	FieldFouls             Field = "fouls"
	FieldPlusMinus         Field = "plus_minus"
	FieldEfficiency        Field = "efficiency"
)

// FieldMap lists, per canonical field, the source labels accepted for it in priority order.
type FieldMap map[Field][]string

// FieldMapping holds the player-row and total-row tables of one source format.
type FieldMapping struct {
	Players FieldMap
	Totals  FieldMap
}

// csvFields has no field goal or quarter entries: CSV exports carry neither.
var csvFields = FieldMap{
	FieldPlayer:            {"Player", "Name"},
	FieldPlayerNumber:      {"Nº", "No", "#", "Number", "Jersey"},
	FieldMinutes:           {"MIN", "Minutes"},
	FieldPoints:            {"PTS", "Points"},
	FieldTwoPointsMade:     {"2PM"},
	FieldTwoPointsAttempt:  {"2PA"},
	FieldTwoPointPct:       {"2P%"},
	FieldThreePointsMade:   {"3PM"},
	FieldThreePointsAtt:    {"3PA"},
	FieldThreePointPct:     {"3P%"},
	FieldFreeThrowsMade:    {"FTM"},
	FieldFreeThrowsAttempt: {"FTA"},
	FieldFreeThrowPct:      {"FT%"},
	FieldOffensiveRebounds: {"OREB", "OR"},
	FieldDefensiveRebounds: {"DREB", "DR"},
	FieldRebounds:          {"REB", "TR"},
	FieldAssists:           {"AST"},
	FieldTurnovers:         {"TOV", "TO"},
	FieldSteals:            {"STL"},
	FieldBlocks:            {"BLK"},
	FieldFouls:             {"PF", "FOULS"},
	FieldPlusMinus:         {"+/-"},
	FieldEfficiency:        {"EFF"},
}

var excelPlayerFields = FieldMap{
	FieldPlayer:            {"Player", "Name"},
	FieldPlayerNumber:      {"Nº", "No", "#", "Number", "Jersey"},
	FieldMinutes:           {"MIN", "Minutes"},
	FieldPoints:            {"PTS", "Points"},
	FieldTwoPointsMade:     {"2PM"},
	FieldTwoPointsAttempt:  {"2PA"},
	FieldTwoPointPct:       {"2P%"},
	FieldThreePointsMade:   {"3PM"},
	FieldThreePointsAtt:    {"3PA"},
	FieldThreePointPct:     {"3P%"},
	FieldFieldGoalsMade:    {"FGM"},
	FieldFieldGoalsAttempt: {"FGA"},
	FieldFieldGoalPct:      {"FG%"},
	FieldFreeThrowsMade:    {"FTM"},
	FieldFreeThrowsAttempt: {"FTA"},
	FieldFreeThrowPct:      {"FT%"},
	FieldOffensiveRebounds: {"OREB"},
	FieldDefensiveRebounds: {"DREB"},
	FieldRebounds:          {"REB"},
	FieldAssists:           {"AST"},
	FieldTurnovers:         {"TOV", "TO"},
	FieldSteals:            {"STL"},
	FieldBlocks:            {"BLK"},
	FieldFouls:             {"PF"},
	FieldPlusMinus:         {"+/-"},
	FieldEfficiency:        {"EFF"},
}

var excelTotalFields = FieldMap{
	FieldQ1:                {parsers.QuarterLabels[0]},
	FieldQ2:                {parsers.QuarterLabels[1]},
	FieldQ3:                {parsers.QuarterLabels[2]},
	FieldQ4:                {parsers.QuarterLabels[3]},
	FieldPoints:            {parsers.ScoreLabel},
	FieldTwoPointsMade:     {"2PM"},
	FieldTwoPointsAttempt:  {"2PA"},
	FieldTwoPointPct:       {"2P%"},
	FieldThreePointsMade:   {"3PM"},
	FieldThreePointsAtt:    {"3PA"},
	FieldThreePointPct:     {"3P%"},
	FieldFieldGoalsMade:    {"FGM"},
	FieldFieldGoalsAttempt: {"FGA"},
	FieldFieldGoalPct:      {"FG%"},
	FieldFreeThrowsMade:    {"FTM"},
	FieldFreeThrowsAttempt: {"FTA"},
	FieldFreeThrowPct:      {"FT%"},
	FieldOffensiveRebounds: {"OREB"},
	FieldDefensiveRebounds: {"DREB"},
	FieldRebounds:          {"REB"},
	FieldAssists:           {"AST"},
	FieldTurnovers:         {"TOV", "TO"},
	FieldSteals:            {"STL"},
	FieldBlocks:            {"BLK"},
	FieldFouls:             {"PF"},
	FieldPlusMinus:         {"+/-"},
}

// DefaultMappings returns the field tables for every format the parsers produce.
func DefaultMappings() map[parsers.Format]FieldMapping {
	excel := FieldMapping{Players: excelPlayerFields, Totals: excelTotalFields}
	return map[parsers.Format]FieldMapping{
		parsers.FormatCSV:              {Players: csvFields, Totals: csvFields},
		parsers.FormatExcelSummary:     excel,
		parsers.FormatExcelLabelLookup: excel,
	}
}

// Normalizer maps parser output onto the stored statistic schema.
type Normalizer struct {
	mappings map[parsers.Format]FieldMapping
}

// NewNormalizer creates a Normalizer with the default mappings.
func NewNormalizer() *Normalizer {
	return &Normalizer{mappings: DefaultMappings()}
}

// Normalize builds the game record for info from sheets. Team names come from the
// filename; when a workbook names its sheets in the opposite order the sides are swapped.
func (n *Normalizer) Normalize(info GameInfo, sheets *parsers.GameSheets) (statsdb.GameRecord, error) {
	if sheets == nil {
		return statsdb.GameRecord{}, fmt.Errorf("normalize %s: no sheets", info.GameDate)
	}
	mapping, ok := n.mappings[sheets.Format]
	if !ok {
		return statsdb.GameRecord{}, fmt.Errorf("%w: %q", ErrNoFieldMapping, sheets.Format)
	}

	first, second := sheets.TeamA, sheets.TeamB
	if first.Name == info.TeamB && second.Name == info.TeamA && info.TeamA != info.TeamB {
		first, second = second, first
	}

	return statsdb.GameRecord{
		GameDate:     info.GameDate,
		TeamA:        info.TeamA,
		TeamB:        info.TeamB,
		TeamAPlayers: playerStats(mapping.Players, info.GameDate, info.TeamA, first.Players),
		TeamATotal:   teamStat(mapping.Totals, info.GameDate, info.TeamA, info.TeamB, first.Total),
		TeamBPlayers: playerStats(mapping.Players, info.GameDate, info.TeamB, second.Players),
		TeamBTotal:   teamStat(mapping.Totals, info.GameDate, info.TeamB, info.TeamA, second.Total),
	}, nil
}

// row reads canonical fields out of one source record.
type row struct {
	fields FieldMap
	rec    parsers.Record
}

// text returns the first non-missing source value for f.
func (r row) text(f Field) (string, bool) {
	for _, label := range r.fields[f] {
		if v, ok := r.rec.Get(label); ok {
			return v, true
		}
	}
	return "", false
}

func (r row) count(f Field) int {
	v, _ := r.text(f)
	return coerceInt(v)
}

func (r row) decimal(f Field) float64 {
	v, _ := r.text(f)
	return coerceFloat(v)
}

// shooting returns made, attempt and the percentage text to keep. When made or
// attempt is not in the source, it is derived from the parts.
func (r row) shooting(made, attempt, pct Field) (int, int, string) {
	m, a := r.count(made), r.count(attempt)
	raw, _ := r.text(pct)
	return m, a, keptPercentage(a, raw)
}

func (r row) fieldGoals() (int, int, string) {
	made, attempt, pct := r.shooting(FieldFieldGoalsMade, FieldFieldGoalsAttempt, FieldFieldGoalPct)
	if _, ok := r.text(FieldFieldGoalsMade); !ok {
		made = r.count(FieldTwoPointsMade) + r.count(FieldThreePointsMade)
	}
	if _, ok := r.text(FieldFieldGoalsAttempt); !ok {
		attempt = r.count(FieldTwoPointsAttempt) + r.count(FieldThreePointsAtt)
		raw, _ := r.text(FieldFieldGoalPct)
		pct = keptPercentage(attempt, raw)
	}
	return made, attempt, pct
}

func playerStats(fields FieldMap, date, team string, recs []parsers.Record) []*statsdb.PlayerStat {
	out := make([]*statsdb.PlayerStat, 0, len(recs))
	for _, rec := range recs {
		r := row{fields: fields, rec: rec}
		name, _ := r.text(FieldPlayer)
		if name == "" {
			continue
		}
		minutes, ok := r.text(FieldMinutes)
		if !ok || minutes == "" {
			minutes = "0"
		}

		stat := &statsdb.PlayerStat{
			GameDate:          date,
			Team:              team,
			Player:            name,
			PlayerNumber:      r.count(FieldPlayerNumber),
			Minutes:           minutes,
			Points:            r.count(FieldPoints),
			OffensiveRebounds: r.count(FieldOffensiveRebounds),
			DefensiveRebounds: r.count(FieldDefensiveRebounds),
			Rebounds:          r.count(FieldRebounds),
			Assists:           r.count(FieldAssists),
			Turnovers:         r.count(FieldTurnovers),
			Steals:            r.count(FieldSteals),
			Blocks:            r.count(FieldBlocks),
			Fouls:             r.count(FieldFouls),
			PlusMinus:         r.count(FieldPlusMinus),
			Efficiency:        r.decimal(FieldEfficiency),
		}
		stat.TwoPointsMade, stat.TwoPointsAttempt, stat.TwoPointPctText = r.shooting(FieldTwoPointsMade, FieldTwoPointsAttempt, FieldTwoPointPct)
		stat.ThreePointsMade, stat.ThreePointsAttempt, stat.ThreePointPctText = r.shooting(FieldThreePointsMade, FieldThreePointsAtt, FieldThreePointPct)
		stat.FieldGoalsMade, stat.FieldGoalsAttempt, stat.FieldGoalPctText = r.fieldGoals()
		stat.FreeThrowsMade, stat.FreeThrowsAttempt, stat.FreeThrowPctText = r.shooting(FieldFreeThrowsMade, FieldFreeThrowsAttempt, FieldFreeThrowPct)
		out = append(out, stat)
	}
	return out
}

func teamStat(fields FieldMap, date, team, opponent string, rec parsers.Record) *statsdb.TeamStat {
	r := row{fields: fields, rec: rec}
	stat := &statsdb.TeamStat{
		GameDate:          date,
		Team:              team,
		Opponent:          opponent,
		Q1Score:           r.count(FieldQ1),
		Q2Score:           r.count(FieldQ2),
		Q3Score:           r.count(FieldQ3),
		Q4Score:           r.count(FieldQ4),
		TotalScore:        r.count(FieldPoints),
		OffensiveRebounds: r.count(FieldOffensiveRebounds),
		DefensiveRebounds: r.count(FieldDefensiveRebounds),
		Rebounds:          r.count(FieldRebounds),
		Assists:           r.count(FieldAssists),
		Steals:            r.count(FieldSteals),
		Blocks:            r.count(FieldBlocks),
		Turnovers:         r.count(FieldTurnovers),
		Fouls:             r.count(FieldFouls),
		PlusMinus:         r.count(FieldPlusMinus),
	}
	stat.TwoPointsMade, stat.TwoPointsAttempt, stat.TwoPointPctText = r.shooting(FieldTwoPointsMade, FieldTwoPointsAttempt, FieldTwoPointPct)
	stat.ThreePointsMade, stat.ThreePointsAttempt, stat.ThreePointPctText = r.shooting(FieldThreePointsMade, FieldThreePointsAtt, FieldThreePointPct)
	stat.FieldGoalsMade, stat.FieldGoalsAttempt, stat.FieldGoalPctText = r.fieldGoals()
	stat.FreeThrowsMade, stat.FreeThrowsAttempt, stat.FreeThrowPctText = r.shooting(FieldFreeThrowsMade, FieldFreeThrowsAttempt, FieldFreeThrowPct)
	return stat
}

// keptPercentage returns the source text only when no ratio can be computed from counts.
func keptPercentage(attempt int, raw string) string {
	if attempt != 0 {
		return ""
	}
	return strings.TrimSpace(raw)
}

// coerceInt truncates numeric text toward zero. Anything else, including percentages, is 0.
func coerceInt(s string) int {
	f := coerceFloat(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func coerceFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
