package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/fedcompose/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to supergraph.yaml (searched upwards from the working directory by default)",
	}

	app := &cli.Command{
		Name:    "fedcompose",
		Usage:   "Compose GraphQL federation subgraphs into a supergraph",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("FEDCOMPOSE_LOG_LEVEL"),
				Value:   "warn",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			ctrl.Flags.LogLevel = level.String()
			log.Logger = log.Level(level)

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create a supergraph.yaml in the current directory",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
			{
				Name:  "compose",
				Usage: "Compose the configured subgraphs into a supergraph",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   `output path, "-" for stdout (overrides the configured output)`,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Compose(ctx, commands.ComposeOptions{
						ConfigPath: c.String("config"),
						Output:     c.String("output"),
					})
				},
			},
			{
				Name:  "watch",
				Usage: "Recompose whenever a subgraph schema or the configuration changes",
				Flags: []cli.Flag{configFlag},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx, commands.ComposeOptions{
						ConfigPath: c.String("config"),
					})
				},
			},
			{
				Name:      "inspect",
				Usage:     "Print the graphs and entities of a supergraph",
				ArgsUsage: "<supergraph.graphql>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the report as JSON",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Inspect(ctx, commands.InspectOptions{
						Path: c.Args().First(),
						JSON: c.Bool("json"),
					})
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run fedcompose")
	}
}
