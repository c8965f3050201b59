// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package orchestrator

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/dag"
	"github.com/specialistvlad/recipegrid/internal/events"
	"github.com/specialistvlad/recipegrid/internal/executor"
	"github.com/specialistvlad/recipegrid/internal/recipe"
)

// Orchestrator runs recipes from a table. Each Execute call is an
// independent run; the phase reflects the most recent one.
type Orchestrator struct {
	table *recipe.Table
	exec  *executor.Executor
	sink  events.Sink
	phase atomic.Int32
}

// New creates an orchestrator. A nil sink discards events.
func New(table *recipe.Table, exec *executor.Executor, sink events.Sink) *Orchestrator {
	if sink == nil {
		sink = events.Discard
	}
	return &Orchestrator{table: table, exec: exec, sink: sink}
}

// Phase returns the current lifecycle phase.
func (o *Orchestrator) Phase() Phase {
	return Phase(o.phase.Load())
}

// Step is a planned recipe with its prepared command lines.
type Step struct {
	Recipe      *recipe.Recipe
	Invocations []executor.Invocation
}

// Prepare resolves the plan for root and prepares every planned recipe.
// Only root receives args; dependencies run without arguments. Resolver and
// argument errors are returned unchanged.
func (o *Orchestrator) Prepare(ctx context.Context, root string, args []string) ([]Step, error) {
	plan, err := dag.Resolve(ctx, o.table, root)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(plan))
	for _, name := range plan {
		r, err := o.table.Lookup(name)
		if err != nil {
			return nil, err
		}
		var recipeArgs []string
		if name == root {
			recipeArgs = args
		}
		invs, err := o.exec.Prepare(r, recipeArgs)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Recipe: r, Invocations: invs})
	}
	return steps, nil
}

// Execute runs root and its dependencies. It returns an error, and no
// Result, when the plan cannot be resolved or prepared; in that case no
// command has been started. Command failures are reported in the Result.
func (o *Orchestrator) Execute(ctx context.Context, root string, args []string) (*Result, error) {
	runID := uuid.NewString()
	ctx = ctxlog.With(ctx, "run_id", runID)
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	res := &Result{RunID: runID, Root: root, Args: args}
	o.publish(ctx, events.Event{Type: events.RunStarted, RunID: runID, Recipe: root, Args: args})

	o.phase.Store(int32(PhaseResolving))
	steps, err := o.Prepare(ctx, root, args)
	if err != nil {
		o.phase.Store(int32(PhaseDone))
		logger.Debug("Run aborted before start.", "root", root, "error", err)
		o.publish(ctx, events.Event{Type: events.RunFinished, RunID: runID, Recipe: root, ExitCode: -1, Error: err.Error(), Duration: time.Since(start).String()})
		return nil, err
	}

	for _, s := range steps {
		res.Plan = append(res.Plan, s.Recipe.Name)
		res.Recipes = append(res.Recipes, RecipeResult{Recipe: s.Recipe.Name, Status: StatusPending})
	}
	o.publish(ctx, events.Event{Type: events.PlanResolved, RunID: runID, Recipe: root, Plan: res.Plan})

	o.phase.Store(int32(PhaseRunning))
	failed := false
	for i, s := range steps {
		rr := &res.Recipes[i]
		if failed {
			rr.Status = StatusSkipped
			o.publish(ctx, events.Event{Type: events.RecipeSkipped, RunID: runID, Recipe: rr.Recipe})
			continue
		}

		o.runStep(ctx, runID, s, rr)
		if rr.Status != StatusSuccess {
			failed = true
		}
	}

	res.Duration = time.Since(start)
	o.phase.Store(int32(PhaseDone))
	o.publish(ctx, events.Event{
		Type:     events.RunFinished,
		RunID:    runID,
		Recipe:   root,
		Success:  res.Succeeded(),
		ExitCode: res.ExitCode(),
		Duration: res.Duration.String(),
	})
	return res, nil
}

// runStep executes one recipe and records its result in rr.
func (o *Orchestrator) runStep(ctx context.Context, runID string, s Step, rr *RecipeResult) {
	logger := ctxlog.FromContext(ctx).With("recipe", rr.Recipe)
	o.publish(ctx, events.Event{Type: events.RecipeStarted, RunID: runID, Recipe: rr.Recipe})

	if ctx.Err() != nil {
		rr.Status = StatusFailure
		rr.Interrupted = true
		rr.ExitCode = executor.ExitInterrupted
		rr.Err = ctx.Err()
		logger.Debug("Run interrupted before recipe started.")
		o.publish(ctx, recipeFinished(runID, rr))
		return
	}

	hook := func(ctx context.Context, inv executor.Invocation) {
		o.publish(ctx, events.Event{
			Type:    events.CommandStarted,
			RunID:   runID,
			Recipe:  inv.Recipe,
			Command: inv.Index + 1,
			Argv:    inv.Args,
		})
	}
	out := o.exec.Execute(ctx, rr.Recipe, s.Invocations, hook)
	rr.Duration = out.Duration

	if out.Succeeded() {
		rr.Status = StatusSuccess
	} else {
		rr.Status = StatusFailure
		rr.ExitCode = out.ExitCode()
		rr.Err = out.Err
		if f := out.Failed(); f != nil {
			rr.Command = f.Index + 1
			rr.Argv = f.Argv
			rr.Interrupted = f.Interrupted
			if f.Err != nil {
				rr.Err = f.Err
			}
		}
		logger.Debug("Recipe failed.", "exit_code", rr.ExitCode, "command", rr.Command, "interrupted", rr.Interrupted)
	}
	o.publish(ctx, recipeFinished(runID, rr))
}

func recipeFinished(runID string, rr *RecipeResult) events.Event {
	ev := events.Event{
		Type:     events.RecipeFinished,
		RunID:    runID,
		Recipe:   rr.Recipe,
		Command:  rr.Command,
		Argv:     rr.Argv,
		ExitCode: rr.ExitCode,
		Success:  rr.Status == StatusSuccess,
		Duration: rr.Duration.String(),
	}
	if rr.Err != nil {
		ev.Error = rr.Err.Error()
	}
	return ev
}

func (o *Orchestrator) publish(ctx context.Context, ev events.Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	o.sink.Publish(ctx, ev)
}
