package ingestservice

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
)

// stats_<team1>_vs_<team2>_<YY>-<M>-<D>.<ext>. The first "_vs_" separates the teams.
var filenamePattern = regexp.MustCompile(`^stats_(.+?)_vs_(.+)_((\d{2})-(\d{1,2})-(\d{1,2}))\.(csv|xls|xlsx)$`)

// GameInfo is the game identity recovered from a box score filename.
type GameInfo struct {
	GameDate  string // YYYY-MM-DD
	TeamA     string
	TeamB     string
	DateToken string // the YY-M-D text as written in the filename
	Extension string // without the dot
}

// Filename rebuilds the canonical filename. An empty ext reuses the original extension.
func (g GameInfo) Filename(ext string) string {
	if ext == "" {
		ext = g.Extension
	}
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("stats_%s_vs_%s_%s.%s", g.TeamA, g.TeamB, g.DateToken, ext)
}

// ExtractGameInfo parses the base name of path. Two-digit years below 50 are 20YY, the rest 19YY.
func ExtractGameInfo(path string) (GameInfo, error) {
	name := filepath.Base(path)
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return GameInfo{}, fmt.Errorf("%w: %q does not match stats_<team1>_vs_<team2>_<YY>-<M>-<D>.<csv|xls|xlsx>", ErrInvalidFilenameFormat, name)
	}

	yy, _ := strconv.Atoi(m[4])
	month, _ := strconv.Atoi(m[5])
	day, _ := strconv.Atoi(m[6])

	year := 1900 + yy
	if yy < 50 {
		year = 2000 + yy
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return GameInfo{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidFilenameFormat, m[3])
	}

	return GameInfo{
		GameDate:  date.Format(statsdb.DateLayout),
		TeamA:     m[1],
		TeamB:     m[2],
		DateToken: m[3],
		Extension: m[7],
	}, nil
}
