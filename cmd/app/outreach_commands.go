package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/outreach/cmd/app/commands"
	"github.com/allisson/outreach/internal/app"
	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	campaignUseCase "github.com/allisson/outreach/internal/campaign/usecase"
	"github.com/allisson/outreach/internal/config"
)

func getOutreachCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-campaign",
			Usage: "Create a campaign with its daily cap and domain blacklist",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Usage:   "Campaign ID (generated when omitted)",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable campaign name",
				},
				&cli.StringFlag{
					Name:  "icp",
					Usage: "Ideal customer profile description",
				},
				&cli.StringFlag{
					Name:  "template",
					Usage: "Email template reference",
				},
				&cli.StringFlag{
					Name:    "blacklist",
					Aliases: []string{"b"},
					Usage:   "Comma-separated list of blocked recipient domains",
				},
				&cli.IntFlag{
					Name:    "daily-limit",
					Aliases: []string{"l"},
					Usage:   "Maximum sends per day (0 uses the default)",
				},
				&cli.BoolFlag{
					Name:  "paused",
					Usage: "Create the campaign paused",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.CampaignUseCase()
				if err != nil {
					return err
				}

				input := campaignUseCase.CreateInput{
					ID:               cmd.String("id"),
					Name:             cmd.String("name"),
					ICPDescription:   cmd.String("icp"),
					EmailTemplateRef: cmd.String("template"),
					DailyLimit:       int(cmd.Int("daily-limit")),
				}
				if cmd.Bool("paused") {
					input.Status = campaignDomain.StatusPaused
				}

				return commands.RunCreateCampaign(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					input,
					cmd.String("blacklist"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "approve",
			Usage: "Approve and send the next sequence step of a lead",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "lead",
					Aliases:  []string{"l"},
					Required: true,
					Usage:    "Lead ID",
				},
				&cli.IntFlag{
					Name:  "step",
					Value: -1,
					Usage: "Expected sequence step (defaults to the next one)",
				},
				&cli.StringFlag{
					Name:  "subject",
					Usage: "Subject replacing the stored draft",
				},
				&cli.StringFlag{
					Name:  "body",
					Usage: "Body replacing the stored draft",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.SendUseCase()
				if err != nil {
					return err
				}

				return commands.RunApprove(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("lead"),
					int(cmd.Int("step")),
					cmd.String("subject"),
					cmd.String("body"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "batch-approve",
			Usage: "Approve and send several leads, each independently",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "leads",
					Required: true,
					Usage:    "Comma-separated lead IDs",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.SendUseCase()
				if err != nil {
					return err
				}

				return commands.RunBatchApprove(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("leads"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "stop-lead",
			Usage: "Take a lead out of the sequence",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "lead",
					Aliases:  []string{"l"},
					Required: true,
					Usage:    "Lead ID",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.LeadUseCase()
				if err != nil {
					return err
				}

				return commands.RunStopLead(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("lead"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "lead-logs",
			Usage: "Print the event log of a lead, newest first",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "lead",
					Aliases:  []string{"l"},
					Required: true,
					Usage:    "Lead ID",
				},
				&cli.IntFlag{
					Name:  "limit",
					Value: 50,
					Usage: "Maximum number of entries",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.LeadUseCase()
				if err != nil {
					return err
				}

				return commands.RunLeadLogs(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("lead"),
					int(cmd.Int("limit")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "metrics",
			Usage: "Print the daily send and reply counters",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "date",
					Aliases: []string{"d"},
					Usage:   "Date in YYYY-MM-DD format (defaults to today)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.DailyMetricUseCase()
				if err != nil {
					return err
				}

				return commands.RunDailyMetrics(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("date"),
					cmd.String("format"),
				)
			},
		},
	}
}
