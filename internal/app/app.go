// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/specialistvlad/recipegrid/internal/config"
	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/hcl"
	"github.com/specialistvlad/recipegrid/internal/recipe"
	"github.com/specialistvlad/recipegrid/internal/report"
	"github.com/specialistvlad/recipegrid/internal/runstate"
	"github.com/specialistvlad/recipegrid/internal/yaml"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	errW    io.Writer
	stdin   io.Reader
	logger  *slog.Logger
	config  *Config
	loaders []config.Loader

	// environ is the process environment before dotenv merging.
	environ []string
	// env is the inherited environment of every command, set by Load.
	env   []string
	table *recipe.Table
	store *runstate.Store
}

// NewApp is the constructor for the main application. outW receives command
// output and plans; errW receives logs, command stderr and run summaries.
// Without loaders, HCL and YAML files are supported.
func NewApp(outW, errW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = []config.Loader{hcl.NewLoader(), yaml.NewLoader()}
	}

	return &App{
		outW:    outW,
		errW:    errW,
		stdin:   os.Stdin,
		logger:  logger,
		config:  cfg,
		loaders: loaders,
		environ: os.Environ(),
		store:   runstate.New(),
	}
}

// Table returns the loaded recipe table, or nil before Load.
func (a *App) Table() *recipe.Table {
	return a.table
}

// Store returns the run state store fed by every run of this app.
func (a *App) Store() *runstate.Store {
	return a.store
}

// context attaches the app logger to ctx.
func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// printer returns a report printer for w honouring the colour mode.
func (a *App) printer(w io.Writer) *report.Printer {
	colorize := false
	switch a.config.Color {
	case "always":
		colorize = true
	case "auto":
		colorize = !color.NoColor
	}
	return report.NewPrinter(w, colorize)
}
