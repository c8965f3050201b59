// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/dag"
	"github.com/specialistvlad/recipegrid/internal/events"
	"github.com/specialistvlad/recipegrid/internal/executor"
	"github.com/specialistvlad/recipegrid/internal/orchestrator"
)

// List prints every recipe in definition order.
func (a *App) List(ctx context.Context) error {
	if err := a.Load(ctx); err != nil {
		return err
	}
	a.printer(a.outW).Recipes(a.table)
	return nil
}

// Plan prints the recipes a run of root would execute, with substituted
// command lines, without running anything.
func (a *App) Plan(ctx context.Context, root string, args []string) error {
	ctx = a.context(ctx)
	if err := a.Load(ctx); err != nil {
		return err
	}

	steps, err := a.newOrchestrator(nil).Prepare(ctx, root, args)
	if err != nil {
		return err
	}
	a.printer(a.outW).Plan(steps)
	return nil
}

// Check validates every recipe file and looks for dependency cycles across
// the whole table, including recipes no root would reach.
func (a *App) Check(ctx context.Context) error {
	ctx = a.context(ctx)
	if err := a.Load(ctx); err != nil {
		return err
	}
	if err := dag.DetectCycles(ctx, a.table); err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Debug("Check passed.", "recipes", a.table.Len())
	fmt.Fprintf(a.outW, "%d recipe(s) OK\n", a.table.Len())
	return nil
}

// newOrchestrator wires an executor over the loaded environment.
func (a *App) newOrchestrator(sink events.Sink) *orchestrator.Orchestrator {
	exec := executor.New(
		executor.WithOutput(a.outW, a.errW),
		executor.WithStdin(a.stdin),
		executor.WithEnviron(a.env),
		executor.WithGracePeriod(a.config.GracePeriod),
	)
	return orchestrator.New(a.table, exec, sink)
}
