package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Black-And-White-Club/hoopstats/app"
	"github.com/Black-And-White-Club/hoopstats/app/shared"
	"github.com/Black-And-White-Club/hoopstats/config"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLI(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "hoopstats",
		Usage:     "basketball box score ingestion and statistics",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"HOOPSTATS_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			ingestCommand(),
			leagueCommand(),
		},
	}
}

// openApp loads configuration and builds the application with the given log format.
func openApp(c *cli.Context, format shared.LogFormat) (*app.App, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := shared.NewLogger(c.App.ErrWriter, cfg.Observability, format)
	application, err := app.NewApp(c.Context, cfg, logger)
	if err != nil {
		return nil, err
	}
	return application, nil
}
