package parsers

import (
	"bytes"
	"fmt"
	"strings"
)

// Header aliases for the columns the parsers themselves need to understand.
var (
	playerColumnNames = []string{"Player", "Name", "Player Name"}
	jerseyColumnNames = []string{"Nº", "No", "No.", "#", "Number", "Jersey"}
)

const totalLabel = "Total"

// findColumn searches for a column by multiple possible names (case-insensitive)
// Removes spaces, underscores, and hyphens for normalization
func findColumn(header []string, possibleNames []string) int {
	for i, col := range header {
		colLower := strings.ToLower(strings.TrimSpace(col))
		colNorm := normalizeLabel(colLower)

		for _, name := range possibleNames {
			nameLower := strings.ToLower(name)
			if colLower == nameLower || colNorm == normalizeLabel(nameLower) {
				return i
			}
		}
	}
	return -1
}

func normalizeLabel(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// cell returns the trimmed value at idx, or "" when the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isTotalLabel(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), totalLabel)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// recordFromRow keys row by header. Empty header cells are skipped and the first
// of two identical header cells wins.
func recordFromRow(header, row []string) Record {
	rec := make(Record, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, seen := rec[h]; seen {
			continue
		}
		rec[h] = cell(row, i)
	}
	return rec
}

// preprocessCSVData cleans CSV data and auto-detects delimiter
// Returns: cleaned string, delimiter rune, error
func preprocessCSVData(data []byte) (string, rune, error) {
	if len(data) == 0 {
		return "", ',', fmt.Errorf("empty CSV data")
	}

	// Strip UTF-8 BOM if present (0xEF, 0xBB, 0xBF)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	cleaned := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	cleanedStr := string(cleaned)

	// Auto-detect delimiter: count commas vs tabs in first 5 lines
	lines := strings.Split(cleanedStr, "\n")
	sampleSize := min(5, len(lines))

	commaCount := 0
	tabCount := 0
	for i := 0; i < sampleSize; i++ {
		commaCount += strings.Count(lines[i], ",")
		tabCount += strings.Count(lines[i], "\t")
	}

	delimiter := ','
	if tabCount > commaCount {
		delimiter = '\t'
	}

	return cleanedStr, delimiter, nil
}
