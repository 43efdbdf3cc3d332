package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/codestub/codestub/internal/commands"
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

	app := &cli.Command{
		Name:    "codestub",
		Usage:   "Generate starter code templates for algorithm problems in Java, Python, C++ and JavaScript",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to codestub.json (default: search the working directory and its parents)",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Logger = log.Logger
			if c.IsSet("log-level") {
				ctrl.Flags.LogLevel = c.String("log-level")
			}
			ctrl.Flags.Config = c.String("config")

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the template generation HTTP API",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "port to listen on (default: configured port)",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Serve(ctx, commands.ServeOptions{Port: int(c.Int("port"))})
				},
			},
			{
				Name:  "generate",
				Usage: "Generate templates from a request file or a GraphQL problem schema",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "request file (.json, .yaml, .yml)"},
					&cli.StringFlag{Name: "schema", Aliases: []string{"s"}, Usage: "GraphQL problem schema"},
					&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "target language; with --schema a comma separated list"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file for --input (default: stdout)"},
					&cli.StringFlag{Name: "out-dir", Usage: "output directory for --schema", Value: "."},
					&cli.BoolFlag{Name: "no-harness", Usage: "omit the execution harness"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx, commands.GenerateOptions{
						Input:     c.String("input"),
						Schema:    c.String("schema"),
						Language:  c.String("language"),
						Out:       c.String("out"),
						OutDir:    c.String("out-dir"),
						NoHarness: c.Bool("no-harness"),
					})
				},
			},
			{
				Name:  "validate",
				Usage: "Check a request file without generating code",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "request file (.json, .yaml, .yml)"},
					&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "override the request's language"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Validate(ctx, commands.ValidateOptions{
						Input:    c.String("input"),
						Language: c.String("language"),
					})
				},
			},
			{
				Name:      "types",
				Usage:     "Show the DSL type mapping of a language",
				ArgsUsage: "<language>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one language argument")
					}
					return ctrl.Types(ctx, c.Args().First())
				},
			},
			{
				Name:  "languages",
				Usage: "List the supported languages",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Languages(ctx)
				},
			},
			{
				Name:  "init",
				Usage: "Create a request file interactively",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate templates whenever request or schema files change",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "directory to watch", Value: "."},
					&cli.StringFlag{Name: "out-dir", Usage: "output directory (default: <dir>/build)"},
					&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "override the language of every request"},
					&cli.BoolFlag{Name: "no-harness", Usage: "omit the execution harness"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx, commands.WatchOptions{
						Dir:       c.String("dir"),
						OutDir:    c.String("out-dir"),
						Language:  c.String("language"),
						NoHarness: c.Bool("no-harness"),
					})
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run codestub")
	}
}
