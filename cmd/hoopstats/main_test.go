package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxScore = "Nº,Player,PTS,2PM,2PA,3PM,3PA,FTM,FTA,REB,AST,STL,BLK,TOV\n" +
	"4,Kim,12,3,6,2,4,0,0,5,2,1,0,1\n" +
	",Total,12,3,6,2,4,0,0,5,2,1,0,1\n" +
	"-,,,,,,,,,,,,,\n" +
	"10,Park,15,6,10,1,2,0,0,7,1,2,0,0\n" +
	",Total,15,6,10,1,2,0,0,7,1,2,0,0\n"

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := "database:\n" +
		"  path: " + filepath.Join(dir, "stats.db") + "\n" +
		"http:\n" +
		"  upload_dir: " + filepath.Join(dir, "uploads") + "\n" +
		"observability:\n" +
		"  log_level: error\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newCLI(&stdout, &stderr).Run(append([]string{"hoopstats"}, args...))
	return stdout.String(), err
}

func TestCLI_League(t *testing.T) {
	cfg := writeConfig(t)

	out, err := runCLI(t, "--config", cfg, "league", "create", "Winter", "League")
	require.NoError(t, err)
	assert.Equal(t, "created league 1 Winter League\n", out)

	_, err = runCLI(t, "--config", cfg, "league", "create", "Winter League")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCLI(t, "--config", cfg, "league", "create", "  ")
	require.Error(t, err)

	out, err = runCLI(t, "--config", cfg, "league", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Winter League")
}

func TestCLI_Ingest(t *testing.T) {
	cfg := writeConfig(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "stats_Lions_vs_Tigers_25-3-09.csv")
	bad := filepath.Join(dir, "lions-tigers.csv")
	require.NoError(t, os.WriteFile(good, []byte(boxScore), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte(boxScore), 0o600))

	_, err := runCLI(t, "--config", cfg, "league", "create", "Spring")
	require.NoError(t, err)

	out, err := runCLI(t, "--config", cfg, "ingest", "--league", "1", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "saved     "+good+" (2025-03-09 Lions vs Tigers, 2 players)")
	assert.Contains(t, out, "rejected  "+bad)

	out, err = runCLI(t, "--config", cfg, "ingest", good)
	require.NoError(t, err)
	assert.Contains(t, out, "duplicate "+good)

	_, err = runCLI(t, "--config", cfg, "ingest", "--league", "42", filepath.Join(dir, "stats_Owls_vs_Hawks_25-3-10.csv"))
	require.Error(t, err)

	_, err = runCLI(t, "--config", cfg, "ingest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files given")
}

func TestCLI_LeagueAssign(t *testing.T) {
	cfg := writeConfig(t)
	dir := t.TempDir()

	game := filepath.Join(dir, "stats_Lions_vs_Tigers_25-3-09.csv")
	other := filepath.Join(dir, "stats_Owls_vs_Hawks_25-3-10.csv")
	require.NoError(t, os.WriteFile(game, []byte(boxScore), 0o600))
	require.NoError(t, os.WriteFile(other, []byte(boxScore), 0o600))

	_, err := runCLI(t, "--config", cfg, "league", "create", "Spring")
	require.NoError(t, err)

	out, err := runCLI(t, "--config", cfg, "ingest", game, other)
	require.NoError(t, err)
	assert.Contains(t, out, "saved     "+game)
	assert.Contains(t, out, "saved     "+other)

	out, err = runCLI(t, "--config", cfg, "league", "assign", "1", "2025-03-09", "Tigers", "Lions")
	require.NoError(t, err)
	assert.Equal(t, "assigned 2025-03-09 Tigers vs Lions to league 1\n", out)

	out, err = runCLI(t, "--config", cfg, "ingest", "--league", "1", other)
	require.NoError(t, err)
	assert.Contains(t, out, "assigned  "+other+" (2025-03-10 Owls vs Hawks, league 1)")

	out, err = runCLI(t, "--config", cfg, "ingest", "--league", "1", other)
	require.NoError(t, err)
	assert.Contains(t, out, "duplicate "+other)

	_, err = runCLI(t, "--config", cfg, "league", "assign", "1", "2025-03-11", "Lions", "Owls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game not found")

	_, err = runCLI(t, "--config", cfg, "league", "assign", "42", "2025-03-09", "Lions", "Tigers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "league not found")

	_, err = runCLI(t, "--config", cfg, "league", "assign", "1", "25-3-09", "Lions", "Tigers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")

	_, err = runCLI(t, "--config", cfg, "league", "assign", "1", "2025-03-09")
	require.Error(t, err)
}
