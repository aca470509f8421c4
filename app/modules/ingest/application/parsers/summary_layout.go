package parsers

import "fmt"

// SummaryLayout extracts both team totals from the rows of a summary sheet.
type SummaryLayout interface {
	Format() Format
	Matches(rows [][]string) bool
	Totals(rows [][]string) (teamA, teamB Record, err error)
}

// Scoreboard and stat block positions (zero-based rows and columns).
const (
	scoreboardFirstRow = 1 // sheet row 2
	scoreboardLastRow  = 2 // sheet row 3
	quarterFirstCol    = 1 // column B
	scoreTotalCol      = 5 // column F
	statFirstRow       = 6 // sheet row 7
	statTeamACol       = 0
	statLabelCol       = 1
	statTeamBCol       = 2
)

// QuarterLabels are the keys the scoreboard quarters are stored under.
var QuarterLabels = [4]string{"Q1", "Q2", "Q3", "Q4"}

// ScoreLabel is the key of the scoreboard running total.
const ScoreLabel = "PTS"

// summaryStatLabels is the fixed row order of sheet rows 7..28.
var summaryStatLabels = []string{
	"FGM", "FGA", "FG%",
	"2PM", "2PA", "2P%",
	"3PM", "3PA", "3P%",
	"FTM", "FTA", "FT%",
	"OREB", "DREB", "REB",
	"AST", "STL", "BLK", "TOV", "PF",
	"+/-", "EFF",
}

// SummaryStatLabels returns a copy of the fixed summary label order.
func SummaryStatLabels() []string {
	return append([]string(nil), summaryStatLabels...)
}

// scoreboard reads the two quarter-by-quarter score rows.
func scoreboard(rows [][]string) (Record, Record, error) {
	if len(rows) <= scoreboardLastRow {
		return nil, nil, fmt.Errorf("%w: summary sheet has no scoreboard", ErrMalformedExcelStructure)
	}
	read := func(row []string) Record {
		rec := make(Record, len(QuarterLabels)+1)
		for i, label := range QuarterLabels {
			rec[label] = cell(row, quarterFirstCol+i)
		}
		rec[ScoreLabel] = cell(row, scoreTotalCol)
		return rec
	}
	return read(rows[scoreboardFirstRow]), read(rows[scoreboardLastRow]), nil
}

// SummarySheetLayout is the legacy layout: every stat sits at a fixed row.
type SummarySheetLayout struct{}

func (SummarySheetLayout) Format() Format { return FormatExcelSummary }

// Matches requires every stat row's label to be where the layout expects it.
func (SummarySheetLayout) Matches(rows [][]string) bool {
	if len(rows) < statFirstRow+len(summaryStatLabels) {
		return false
	}
	for i, label := range summaryStatLabels {
		if cell(rows[statFirstRow+i], statLabelCol) != label {
			return false
		}
	}
	return true
}

func (l SummarySheetLayout) Totals(rows [][]string) (Record, Record, error) {
	if !l.Matches(rows) {
		return nil, nil, fmt.Errorf("%w: summary stat rows are not in the expected order", ErrMalformedExcelStructure)
	}
	teamA, teamB, err := scoreboard(rows)
	if err != nil {
		return nil, nil, err
	}
	for i, label := range summaryStatLabels {
		row := rows[statFirstRow+i]
		teamA[label] = cell(row, statTeamACol)
		teamB[label] = cell(row, statTeamBCol)
	}
	return teamA, teamB, nil
}

// LabelLookupLayout finds stat rows by their column B label anywhere below the
// scoreboard. Labels that are absent are left out of the record.
type LabelLookupLayout struct{}

func (LabelLookupLayout) Format() Format { return FormatExcelLabelLookup }

// Matches accepts any sheet that carries a scoreboard.
func (LabelLookupLayout) Matches(rows [][]string) bool {
	return len(rows) > scoreboardLastRow
}

func (LabelLookupLayout) Totals(rows [][]string) (Record, Record, error) {
	teamA, teamB, err := scoreboard(rows)
	if err != nil {
		return nil, nil, err
	}
	known := make(map[string]bool, len(summaryStatLabels))
	for _, label := range summaryStatLabels {
		known[label] = true
	}
	for _, row := range rows[scoreboardLastRow+1:] {
		label := cell(row, statLabelCol)
		if !known[label] {
			continue
		}
		// First occurrence wins.
		if _, seen := teamA[label]; seen {
			continue
		}
		teamA[label] = cell(row, statTeamACol)
		teamB[label] = cell(row, statTeamBCol)
	}
	return teamA, teamB, nil
}
