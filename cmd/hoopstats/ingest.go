package main

import (
	"errors"
	"fmt"
	"io"

	ingestservice "github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application"
	"github.com/Black-And-White-Club/hoopstats/app/shared"
	"github.com/urfave/cli/v2"
)

func ingestCommand() *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "ingest box score files",
		ArgsUsage: "<files...>",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "league",
				Usage: "league to assign ingested games to (0 leaves them unassigned)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("ingest: no files given")
			}

			application, err := openApp(c, shared.LogFormatText)
			if err != nil {
				return err
			}
			defer application.Close()

			svc := application.Modules.Ingest.GetService()
			failed := ingestFiles(c, svc, c.Int64("league"), c.Args().Slice(), c.App.Writer)
			if failed > 0 {
				return fmt.Errorf("ingest: %d of %d files failed", failed, c.NArg())
			}
			return nil
		},
	}
}

// ingestFiles processes every path, printing one outcome line each, and returns the failure count.
// Duplicates are not failures.
func ingestFiles(c *cli.Context, svc ingestservice.Service, leagueID int64, paths []string, out io.Writer) int {
	failed := 0
	for _, path := range paths {
		res, err := svc.IngestFile(c.Context, path, leagueID)
		switch {
		case err != nil && ingestservice.IsRejection(err):
			failed++
			fmt.Fprintf(out, "rejected  %s: %v\n", path, err)
		case err != nil:
			failed++
			fmt.Fprintf(out, "failed    %s: %v\n", path, err)
		case res.Duplicate && res.Assigned:
			fmt.Fprintf(out, "assigned  %s (%s %s vs %s, league %d)\n", path, res.Game.GameDate, res.Game.TeamA, res.Game.TeamB, res.LeagueID)
		case res.Duplicate:
			fmt.Fprintf(out, "duplicate %s (%s %s vs %s)\n", path, res.Game.GameDate, res.Game.TeamA, res.Game.TeamB)
		default:
			fmt.Fprintf(out, "saved     %s (%s %s vs %s, %d players)\n", path, res.Game.GameDate, res.Game.TeamA, res.Game.TeamB, res.Players)
		}
	}
	return failed
}
