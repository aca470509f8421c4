package parsers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	minExcelSheets   = 3
	playerSheetTrail = " Stats"
)

// ExcelParser reads three-sheet workbooks: two player sheets and a summary sheet.
// The summary sheet is read with the first layout whose Matches accepts it.
type ExcelParser struct {
	layouts []SummaryLayout
}

// NewExcelParser accepts both summary layouts, preferring the fixed-offset one.
func NewExcelParser() *ExcelParser {
	return &ExcelParser{layouts: []SummaryLayout{SummarySheetLayout{}, LabelLookupLayout{}}}
}

// NewSummarySheetParser only accepts the fixed-offset summary layout.
func NewSummarySheetParser() *ExcelParser {
	return &ExcelParser{layouts: []SummaryLayout{SummarySheetLayout{}}}
}

// NewLabelLookupParser always locates summary stats by label.
func NewLabelLookupParser() *ExcelParser {
	return &ExcelParser{layouts: []SummaryLayout{LabelLookupLayout{}}}
}

// Parse reads both player sheets and the summary totals.
func (p *ExcelParser) Parse(data []byte) (*GameSheets, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "zip: not a valid zip file") {
			return nil, fmt.Errorf("%w: failed to open workbook: %v. (Hint: legacy binary .xls files must be re-saved as .xlsx)", ErrMalformedExcelStructure, err)
		}
		return nil, fmt.Errorf("%w: failed to open workbook: %v", ErrMalformedExcelStructure, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < minExcelSheets {
		return nil, fmt.Errorf("%w: expected %d sheets, found %d", ErrMalformedExcelStructure, minExcelSheets, len(sheets))
	}

	teamA, err := readPlayerSheet(f, sheets[0])
	if err != nil {
		return nil, err
	}
	teamB, err := readPlayerSheet(f, sheets[1])
	if err != nil {
		return nil, err
	}

	summary, err := f.GetRows(sheets[2])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", ErrMalformedExcelStructure, sheets[2], err)
	}

	layout := p.pickLayout(summary)
	if layout == nil {
		return nil, fmt.Errorf("%w: summary sheet %q matches no known layout", ErrMalformedExcelStructure, sheets[2])
	}

	totalA, totalB, err := layout.Totals(summary)
	if err != nil {
		return nil, err
	}
	teamA.Total = totalA
	teamB.Total = totalB

	return &GameSheets{
		Format: layout.Format(),
		TeamA:  teamA,
		TeamB:  teamB,
	}, nil
}

func (p *ExcelParser) pickLayout(rows [][]string) SummaryLayout {
	for _, layout := range p.layouts {
		if layout.Matches(rows) {
			return layout
		}
	}
	return nil
}

// TeamNameFromSheet strips the player sheet suffix, e.g. "Lions Stats" -> "Lions".
func TeamNameFromSheet(sheet string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sheet), playerSheetTrail))
}

// readPlayerSheet reads a header row followed by one row per player.
// Rows without a player name and Total rows are skipped.
func readPlayerSheet(f *excelize.File, sheet string) (TeamSheet, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return TeamSheet{}, fmt.Errorf("%w: failed to read sheet %q: %v", ErrMalformedExcelStructure, sheet, err)
	}
	if len(rows) == 0 {
		return TeamSheet{}, fmt.Errorf("%w: sheet %q is empty", ErrMalformedExcelStructure, sheet)
	}

	header := rows[0]
	playerCol := findColumn(header, playerColumnNames)
	if playerCol < 0 {
		return TeamSheet{}, fmt.Errorf("%w: sheet %q has no Player column", ErrMalformedExcelStructure, sheet)
	}

	team := TeamSheet{Name: TeamNameFromSheet(sheet)}
	for _, row := range rows[1:] {
		name := cell(row, playerCol)
		if name == "" || isTotalLabel(name) {
			continue
		}
		team.Players = append(team.Players, recordFromRow(header, row))
	}
	return team, nil
}
