package main

import (
	"github.com/Black-And-White-Club/hoopstats/app"
	"github.com/Black-And-White-Club/hoopstats/app/shared"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			application, err := openApp(c, shared.LogFormatJSON)
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, stop := app.WaitForShutdown(c.Context)
			defer stop()

			return application.Start(ctx)
		},
	}
}
