// Package main is the entry point for the devcmd CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	dcli "github.com/NikitaCOEUR/devcmd/internal/cli"
	"github.com/NikitaCOEUR/devcmd/internal/tokenizer"
	"github.com/NikitaCOEUR/devcmd/internal/trace"
	"github.com/NikitaCOEUR/devcmd/internal/view"
	"github.com/NikitaCOEUR/devcmd/pkg/version"
)

func main() {
	stopTrace := trace.Init()

	if err := newApp(os.Stdin, os.Stdout).Run(context.Background(), os.Args); err != nil {
		stopTrace()
		fmt.Fprintln(os.Stderr, view.RenderError(err.Error()))
		os.Exit(1)
	}
	stopTrace()
}

func newApp(in io.Reader, out io.Writer) *cli.Command {
	common := func(cmd *cli.Command) dcli.CommonParams {
		return dcli.CommonParams{
			LogLevel:   cmd.String("log-level"),
			ConfigPath: cmd.String("config"),
			Out:        out,
		}
	}

	console := func(ctx context.Context, cmd *cli.Command) error {
		return dcli.Console(ctx, dcli.ConsoleParams{
			CommonParams: common(cmd),
			In:           in,
		})
	}

	return &cli.Command{
		Name:                  "devcmd",
		Usage:                 "Developer console with command-line completion",
		Version:               version.String(),
		Writer:                out,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), overrides log_level from the config",
				Sources: cli.EnvVars("DEVCMD_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file used instead of the local .devcmd file",
				Sources: cli.EnvVars("DEVCMD_CONFIG"),
			},
		},
		Action: console,
		Commands: []*cli.Command{
			{
				Name:            "run",
				Usage:           "Run a single command line",
				ArgsUsage:       "<line...>",
				SkipFlagParsing: true,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("command line required")
					}
					return dcli.Run(ctx, dcli.RunParams{
						CommonParams: common(cmd),
						Line:         lineFromArgs(cmd.Args().Slice()),
					})
				},
			},
			{
				Name:            "complete",
				Usage:           "Print a line completed as far as it is unambiguous",
				ArgsUsage:       "<line...>",
				SkipFlagParsing: true,
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dcli.Complete(dcli.CompleteParams{
						CommonParams: common(cmd),
						Line:         lineFromArgs(cmd.Args().Slice()),
					})
				},
			},
			{
				Name:      "options",
				Usage:     "Print the candidates for the end of a line",
				ArgsUsage: "[--] <line...>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "plain",
						Usage: "Print one candidate per line",
					},
					&cli.IntFlag{
						Name:  "width",
						Value: view.DefaultWidth,
						Usage: "Width used to lay out candidates in columns",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dcli.Options(dcli.OptionsParams{
						CommonParams: common(cmd),
						Line:         lineFromArgs(cmd.Args().Slice()),
						Plain:        cmd.Bool("plain"),
						Width:        cmd.Int("width"),
					})
				},
			},
			{
				Name:   "console",
				Usage:  "Start the interactive console (default)",
				Action: console,
			},
			{
				Name:      "list",
				Usage:     "List available commands or describe one",
				ArgsUsage: "[command]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dcli.List(dcli.ListParams{
						CommonParams: common(cmd),
						Command:      cmd.Args().First(),
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show the configuration devcmd loads in the current directory",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dcli.Status(dcli.StatusParams{
						ConfigPath: cmd.String("config"),
						Out:        out,
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a devcmd configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dcli.Validate(dcli.ValidateParams{
						ConfigPath: cmd.Args().First(),
						Out:        out,
					})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for devcmd configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return dcli.Schema(dcli.SchemaParams{OutputPath: outputPath, Out: out})
				},
			},
		},
	}
}

// lineFromArgs rebuilds a console line from shell words. A single word is
// taken as the whole line so trailing separators survive.
func lineFromArgs(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.ContainsAny(arg, " \"'") {
			arg = tokenizer.Quote(arg)
		}
		words = append(words, arg)
	}
	return strings.Join(words, " ")
}
