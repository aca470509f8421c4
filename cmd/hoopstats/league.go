package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/app/shared"
	"github.com/urfave/cli/v2"
)

func leagueCommand() *cli.Command {
	return &cli.Command{
		Name:  "league",
		Usage: "manage leagues",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "create a league",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					name := strings.Join(c.Args().Slice(), " ")
					if strings.TrimSpace(name) == "" {
						return errors.New("league create: name required")
					}

					application, err := openApp(c, shared.LogFormatText)
					if err != nil {
						return err
					}
					defer application.Close()

					league, created, err := application.Modules.Stats.GetService().CreateLeague(c.Context, name)
					if err != nil {
						return err
					}
					if !created {
						return fmt.Errorf("league %q already exists", strings.TrimSpace(name))
					}
					fmt.Fprintf(c.App.Writer, "created league %d %s\n", league.LeagueID, league.LeagueName)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list leagues, newest first",
				Action: func(c *cli.Context) error {
					application, err := openApp(c, shared.LogFormatText)
					if err != nil {
						return err
					}
					defer application.Close()

					leagues, err := application.Modules.Stats.GetService().ListLeagues(c.Context)
					if err != nil {
						return err
					}
					printLeagues(c, leagues)
					return nil
				},
			},
			{
				Name:      "assign",
				Usage:     "move a stored game into a league",
				ArgsUsage: "<league-id> <YYYY-MM-DD> <team-a> <team-b>",
				Action:    assignGame,
			},
		},
	}
}

func assignGame(c *cli.Context) error {
	if c.NArg() != 4 {
		return errors.New("league assign: want <league-id> <YYYY-MM-DD> <team-a> <team-b>")
	}
	leagueID, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil || leagueID <= 0 {
		return fmt.Errorf("league assign: invalid league id %q", c.Args().Get(0))
	}
	date := c.Args().Get(1)
	if _, err := time.Parse(statsdb.DateLayout, date); err != nil {
		return fmt.Errorf("league assign: invalid date %q", date)
	}
	teamA, teamB := c.Args().Get(2), c.Args().Get(3)

	application, err := openApp(c, shared.LogFormatText)
	if err != nil {
		return err
	}
	defer application.Close()

	err = application.Modules.Stats.GetService().AssignGameToLeague(c.Context, statsservice.GameAssignment{
		GameDate: date,
		TeamA:    teamA,
		TeamB:    teamB,
		LeagueID: leagueID,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "assigned %s %s vs %s to league %d\n", date, teamA, teamB, leagueID)
	return nil
}

func printLeagues(c *cli.Context, leagues []statsdb.League) {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED")
	for _, l := range leagues {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", l.LeagueID, l.LeagueName, l.CreatedAt.Format(statsdb.DateLayout))
	}
	tw.Flush()
}
