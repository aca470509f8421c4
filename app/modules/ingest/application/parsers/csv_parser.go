package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// sentinelStrategy recognises the row that separates the two teams' blocks.
type sentinelStrategy struct {
	name  string
	match func(s *csvSheet, rowIdx int) bool
}

// Tried in order; the first strategy that finds any sentinel decides the split.
var sentinelStrategies = []sentinelStrategy{
	{name: "dashMarker", match: isDashMarker},
	{name: "emptyJersey", match: isEmptyJersey},
}

// csvSheet is the header plus body rows of one CSV file.
type csvSheet struct {
	header    []string
	rows      [][]string
	playerCol int
	jerseyCol int
}

// CSVParser parses single-sheet box scores where both teams share one table.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse splits the file at its sentinel row and returns both team blocks.
func (p *CSVParser) Parse(data []byte) (*GameSheets, error) {
	sheet, err := readCSVSheet(data)
	if err != nil {
		return nil, err
	}

	sep, err := sheet.findSentinel()
	if err != nil {
		return nil, err
	}

	teamA, err := sheet.block(sheet.rows[:sep])
	if err != nil {
		return nil, fmt.Errorf("first team block: %w", err)
	}
	teamB, err := sheet.block(sheet.rows[sep+1:])
	if err != nil {
		return nil, fmt.Errorf("second team block: %w", err)
	}

	return &GameSheets{
		Format: FormatCSV,
		TeamA:  teamA,
		TeamB:  teamB,
	}, nil
}

func readCSVSheet(data []byte) (*csvSheet, error) {
	cleaned, delimiter, err := preprocessCSVData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSVStructure, err)
	}

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read CSV: %v", ErrMalformedCSVStructure, err)
		}
		// Blank lines are dropped; rows of empty cells are kept, they may be separators.
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		records = append(records, record)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformedCSVStructure)
	}

	header := records[0]
	playerCol := findColumn(header, playerColumnNames)
	if playerCol < 0 {
		return nil, fmt.Errorf("%w: missing Player column", ErrMalformedCSVStructure)
	}

	return &csvSheet{
		header:    header,
		rows:      records[1:],
		playerCol: playerCol,
		jerseyCol: findColumn(header, jerseyColumnNames),
	}, nil
}

// findSentinel returns the index (into rows) of the single separator row.
func (s *csvSheet) findSentinel() (int, error) {
	for _, strategy := range sentinelStrategies {
		var found []int
		for i := range s.rows {
			if strategy.match(s, i) {
				found = append(found, i)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return -1, fmt.Errorf("%w: %d separator rows found (%s)", ErrMalformedCSVStructure, len(found), strategy.name)
		}
	}
	return -1, fmt.Errorf("%w: no separator row between teams", ErrMalformedCSVStructure)
}

func isDashMarker(s *csvSheet, rowIdx int) bool {
	return cell(s.rows[rowIdx], 0) == "-"
}

// isEmptyJersey matches a row with a blank jersey cell. Total rows and the final
// row of the file are team totals, not separators.
func isEmptyJersey(s *csvSheet, rowIdx int) bool {
	if s.jerseyCol < 0 || rowIdx == len(s.rows)-1 {
		return false
	}
	row := s.rows[rowIdx]
	if isTotalLabel(cell(row, s.playerCol)) {
		return false
	}
	return cell(row, s.jerseyCol) == ""
}

// block turns one team's rows into a TeamSheet. The total is the row labelled
// Total, otherwise the last row.
func (s *csvSheet) block(rows [][]string) (TeamSheet, error) {
	var kept [][]string
	for _, row := range rows {
		if !isBlankRow(row) {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return TeamSheet{}, fmt.Errorf("%w: empty team block", ErrMalformedCSVStructure)
	}

	totalIdx := len(kept) - 1
	for i, row := range kept {
		if isTotalLabel(cell(row, s.playerCol)) {
			totalIdx = i
			break
		}
	}

	team := TeamSheet{Total: recordFromRow(s.header, kept[totalIdx])}
	for i, row := range kept {
		if i == totalIdx {
			continue
		}
		team.Players = append(team.Players, recordFromRow(s.header, row))
	}
	return team, nil
}
