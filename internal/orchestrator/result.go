// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package orchestrator

import (
	"time"

	"github.com/specialistvlad/recipegrid/internal/dag"
)

// Phase is the lifecycle phase of an orchestrator.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseRunning
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseRunning:
		return "running"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// Status is the final state of one planned recipe.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusSkipped Status = "skipped"
)

// RecipeResult describes how one planned recipe ended.
type RecipeResult struct {
	Recipe string
	Status Status
	// ExitCode is the code reported for the recipe; 0 unless it failed.
	ExitCode int
	// Command is the 1-based index of the failing command, 0 otherwise.
	Command int
	// Argv is the substituted command line of the failing command.
	Argv        []string
	Interrupted bool
	// Err is set for failures that are not plain non-zero exits, such as an
	// *executor.LaunchError.
	Err      error
	Duration time.Duration
}

// Result aggregates the outcome of a run.
type Result struct {
	RunID    string
	Root     string
	Args     []string
	Plan     dag.Plan
	Recipes  []RecipeResult
	Duration time.Duration
}

// Succeeded reports whether every planned recipe succeeded.
func (r *Result) Succeeded() bool {
	for _, rr := range r.Recipes {
		if rr.Status != StatusSuccess {
			return false
		}
	}
	return true
}

// FirstFailure returns the recipe that ended the run, or nil.
func (r *Result) FirstFailure() *RecipeResult {
	for i := range r.Recipes {
		if r.Recipes[i].Status == StatusFailure {
			return &r.Recipes[i]
		}
	}
	return nil
}

// Skipped returns the names of recipes that never ran, in plan order.
func (r *Result) Skipped() []string {
	var out []string
	for _, rr := range r.Recipes {
		if rr.Status == StatusSkipped {
			out = append(out, rr.Recipe)
		}
	}
	return out
}

// ExitCode is 0 for a successful run and the failing recipe's exit code
// otherwise.
func (r *Result) ExitCode() int {
	if f := r.FirstFailure(); f != nil {
		if f.ExitCode == 0 {
			return 1
		}
		return f.ExitCode
	}
	if !r.Succeeded() {
		return 1
	}
	return 0
}
