package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/outreach/cmd/app/commands"
	"github.com/allisson/outreach/internal/app"
	"github.com/allisson/outreach/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "worker",
			Usage: "Start the outbox worker and the inbound reply listener",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunWorker(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply pending database migrations, or move by --steps versions",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "steps",
					Usage: "Number of versions to migrate; negative rolls back, 0 applies all",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString, int(cmd.Int("steps")))
			},
		},
	}
}
