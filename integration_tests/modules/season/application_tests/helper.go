package seasonintegrationtests

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	ingestservice "github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application"
	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/app/shared/metrics"
	"github.com/Black-And-White-Club/hoopstats/config"
	"github.com/Black-And-White-Club/hoopstats/db/bundb"
	"github.com/Black-And-White-Club/hoopstats/integration_tests/testutils"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

// SeasonTestDeps is one process worth of services over a shared store file.
type SeasonTestDeps struct {
	Ctx    context.Context
	BunDB  *bun.DB
	Stats  *statsservice.StatsService
	Ingest *ingestservice.IngestService
}

// SetupSeason opens `handles` independent connections to one store file, each with its own services.
func SetupSeason(t *testing.T, handles int) []SeasonTestDeps {
	t.Helper()
	cfg := testutils.TestDatabaseConfig(t)

	deps := make([]SeasonTestDeps, 0, handles)
	for i := 0; i < handles; i++ {
		deps = append(deps, newDeps(t, cfg))
	}
	return deps
}

func newDeps(t *testing.T, cfg config.DatabaseConfig) SeasonTestDeps {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	opMetrics := metrics.NewNoop()

	db := testutils.OpenTestDB(t, cfg)
	stats := statsservice.NewStatsService(
		statsdb.NewRepository(db),
		logger,
		opMetrics,
		tracer,
		db,
		bundb.RetryPolicy{MaxAttempts: 10, Backoff: 20 * time.Millisecond},
		nil,
	)

	return SeasonTestDeps{
		Ctx:    context.Background(),
		BunDB:  db,
		Stats:  stats,
		Ingest: ingestservice.NewIngestService(stats, logger, opMetrics, tracer),
	}
}

var boxScoreHeader = []string{
	"Nº", "Player", "MIN", "PTS", "2PM", "2PA", "3PM", "3PA", "FTM", "FTA",
	"OREB", "DREB", "REB", "AST", "TOV", "STL", "BLK", "PF", "+/-", "EFF",
}

// WriteBoxScore writes game as a dash-separated CSV export named after its teams and date.
func WriteBoxScore(t *testing.T, dir string, game statsdb.GameRecord) string {
	t.Helper()

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write(boxScoreHeader)
	writeTeam(w, game.TeamAPlayers, game.TeamATotal)
	w.Write([]string{"-"})
	writeTeam(w, game.TeamBPlayers, game.TeamBTotal)
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("failed to encode box score: %v", err)
	}

	// 2025-03-09 -> 25-03-09
	name := "stats_" + game.TeamA + "_vs_" + game.TeamB + "_" + game.GameDate[2:] + ".csv"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		t.Fatalf("failed to write box score: %v", err)
	}
	return path
}

func writeTeam(w *csv.Writer, players []*statsdb.PlayerStat, total *statsdb.TeamStat) {
	for _, p := range players {
		w.Write([]string{
			strconv.Itoa(p.PlayerNumber), p.Player, p.Minutes, strconv.Itoa(p.Points),
			strconv.Itoa(p.TwoPointsMade), strconv.Itoa(p.TwoPointsAttempt),
			strconv.Itoa(p.ThreePointsMade), strconv.Itoa(p.ThreePointsAttempt),
			strconv.Itoa(p.FreeThrowsMade), strconv.Itoa(p.FreeThrowsAttempt),
			strconv.Itoa(p.OffensiveRebounds), strconv.Itoa(p.DefensiveRebounds), strconv.Itoa(p.Rebounds),
			strconv.Itoa(p.Assists), strconv.Itoa(p.Turnovers), strconv.Itoa(p.Steals), strconv.Itoa(p.Blocks),
			strconv.Itoa(p.Fouls), strconv.Itoa(p.PlusMinus), strconv.FormatFloat(p.Efficiency, 'f', -1, 64),
		})
	}
	w.Write([]string{
		"", "Total", "", strconv.Itoa(total.TotalScore),
		strconv.Itoa(total.TwoPointsMade), strconv.Itoa(total.TwoPointsAttempt),
		strconv.Itoa(total.ThreePointsMade), strconv.Itoa(total.ThreePointsAttempt),
		strconv.Itoa(total.FreeThrowsMade), strconv.Itoa(total.FreeThrowsAttempt),
		strconv.Itoa(total.OffensiveRebounds), strconv.Itoa(total.DefensiveRebounds), strconv.Itoa(total.Rebounds),
		strconv.Itoa(total.Assists), strconv.Itoa(total.Turnovers), strconv.Itoa(total.Steals), strconv.Itoa(total.Blocks),
		strconv.Itoa(total.Fouls), "0", "0",
	})
}
