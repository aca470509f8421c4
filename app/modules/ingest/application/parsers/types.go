package parsers

import "strings"

// Format identifies the source dialect a GameSheets value was read from.
type Format string

const (
	FormatCSV              Format = "csv"
	FormatExcelSummary     Format = "excel_summary"
	FormatExcelLabelLookup Format = "excel_label_lookup"
)

// IsExcel reports whether the format came from a workbook.
func (f Format) IsExcel() bool {
	return f == FormatExcelSummary || f == FormatExcelLabelLookup
}

// Record maps a source column or stat label to its raw cell text.
type Record map[string]string

// Get returns the trimmed value stored under label and whether it was present.
func (r Record) Get(label string) (string, bool) {
	v, ok := r[label]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// TeamSheet is one side of a box score: its player rows and its total row.
// Name is empty when the source carries no team name (CSV).
type TeamSheet struct {
	Name    string
	Players []Record
	Total   Record
}

// GameSheets is the parser output. TeamA and TeamB are positional: first and second in the file.
type GameSheets struct {
	Format Format
	TeamA  TeamSheet
	TeamB  TeamSheet
}
