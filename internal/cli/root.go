// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/recipegrid/internal/app"
	"github.com/specialistvlad/recipegrid/internal/executor"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// SetBuildInfo records version information injected at link time.
func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}
}

// options collects the persistent flag values.
type options struct {
	files           []string
	dotenv          string
	logLevel        string
	logFormat       string
	color           string
	statusPort      int
	eventsURL       string
	eventsNamespace string
	gracePeriod     time.Duration
	dryRun          bool
}

func (o *options) appConfig() (*app.Config, error) {
	return app.NewConfig(app.Config{
		RecipePaths:     o.files,
		DotenvPath:      o.dotenv,
		LogLevel:        o.logLevel,
		LogFormat:       o.logFormat,
		Color:           o.color,
		StatusPort:      o.statusPort,
		EventsURL:       o.eventsURL,
		EventsNamespace: o.eventsNamespace,
		GracePeriod:     o.gracePeriod,
		DryRun:          o.dryRun,
	})
}

// Streams are the process streams a command writes to.
type Streams struct {
	Out io.Writer
	Err io.Writer
	// LookupEnv resolves RECIPEGRID_* defaults; nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewRootCommand builds the command tree. Recipe output goes to s.Out,
// logs and summaries to s.Err.
func NewRootCommand(s Streams) *cobra.Command {
	opts := &options{}

	// newApp validates the flags and builds an App for one command.
	newApp := func() (*app.App, error) {
		cfg, err := opts.appConfig()
		if err != nil {
			return nil, usageError(err)
		}
		return app.NewApp(s.Out, s.Err, cfg), nil
	}

	runRecipe := func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		res, err := a.Run(cmd.Context(), args[0], args[1:])
		if err != nil {
			return toExitError(err)
		}
		if res != nil && res.ExitCode() != 0 {
			return &ExitError{Code: res.ExitCode()}
		}
		return nil
	}

	root := &cobra.Command{
		Use:   "recipegrid [flags] <recipe> [args...]",
		Short: "Run named recipes and their dependencies",
		Long: `recipegrid runs named recipes declared in HCL or YAML files.

A recipe is an ordered list of commands plus the recipes it depends on.
Dependencies run first, each exactly once, one at a time. The first command
that fails stops the run.

Recipe files are read from --file (files or directories). Without --file,
recipes.hcl, recipes.yaml and recipes.yml in the working directory are used.
Every flag can also be set through a RECIPEGRID_* environment variable,
e.g. RECIPEGRID_LOG_LEVEL=debug.

Arguments after the recipe name are passed to that recipe only; its
commands reference them as {{1}}, {{2}}, ... or by parameter name.

Exit codes:
  0    all recipes succeeded
  N    the failing command's exit code
  2    usage error or missing recipe arguments
  125  invalid recipe files, unknown recipe or dependency cycle
  127  a command could not be started
  130  interrupted

Examples:
  recipegrid test
  recipegrid deploy prod
  recipegrid -f ci/ --dry-run release v1.2.0
  recipegrid -- list     # run a recipe named like a subcommand`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyEnv(cmd, s.LookupEnv); err != nil {
				return usageError(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runRecipe(cmd, args)
		},
	}
	root.SetOut(s.Out)
	root.SetErr(s.Err)
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	root.Flags().SetInterspersed(false)

	pf := root.PersistentFlags()
	pf.StringSliceVarP(&opts.files, "file", "f", nil, "Recipe file or directory (repeatable)")
	pf.StringVar(&opts.dotenv, "dotenv", "", "Dotenv file merged into the environment (default .env if present)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&opts.color, "color", "auto", "Coloured summaries: auto, always, never")
	pf.IntVar(&opts.statusPort, "status-port", 0, "Serve /health and /status on this port during a run (0 disables)")
	pf.StringVar(&opts.eventsURL, "events-url", "", "Publish run events to this socket.io server")
	pf.StringVar(&opts.eventsNamespace, "events-namespace", "/", "socket.io namespace for run events")
	pf.DurationVar(&opts.gracePeriod, "grace-period", executor.DefaultGracePeriod, "Time an interrupted command gets to exit before it is killed")
	pf.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print the plan instead of running it")

	root.AddCommand(
		&cobra.Command{
			Use:   "run <recipe> [args...]",
			Short: "Run a recipe (same as the root command)",
			Args:  usageArgs(cobra.MinimumNArgs(1)),
			RunE:  runRecipe,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List recipes with their parameters",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				if err := a.List(cmd.Context()); err != nil {
					return toExitError(err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "plan <recipe> [args...]",
			Short: "Print the execution plan with substituted commands",
			Args:  usageArgs(cobra.MinimumNArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				if err := a.Plan(cmd.Context(), args[0], args[1:]); err != nil {
					return toExitError(err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Validate recipe files and detect dependency cycles",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				if err := a.Check(cmd.Context()); err != nil {
					return toExitError(err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  usageArgs(cobra.NoArgs),
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "recipegrid %s\ncommit: %s\nbuilt:  %s\n", buildVersion, buildCommit, buildDate)
			},
		},
	)
	for _, sub := range root.Commands() {
		sub.Flags().SetInterspersed(false)
	}

	return root
}

// usageArgs reports positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// Execute runs the command tree with args and returns an *ExitError for
// every non-zero outcome.
func Execute(ctx context.Context, s Streams, args []string) error {
	root := NewRootCommand(s)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return toExitError(err)
	}
	return nil
}
