// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package runstate keeps an ephemeral, in-memory view of the run in
// progress.
//
// The Store is an events.Sink: the orchestrator publishes lifecycle events
// to it while a single goroutine drives the run, and the status server
// reads snapshots concurrently. A sync.RWMutex guards the state; readers
// always receive deep copies.
package runstate

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/recipegrid/internal/events"
)

// Status is the lifecycle state of a single planned recipe.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusSkipped Status = "skipped"
)

// RecipeState is the recorded state of one recipe of the plan.
type RecipeState struct {
	Name     string    `json:"name"`
	Status   Status    `json:"status"`
	Command  int       `json:"command,omitempty"`
	ExitCode int       `json:"exit_code"`
	Error    string    `json:"error,omitempty"`
	Started  time.Time `json:"started,omitzero"`
	Finished time.Time `json:"finished,omitzero"`
}

// Snapshot is a point-in-time copy of the run state.
type Snapshot struct {
	RunID    string        `json:"run_id"`
	Root     string        `json:"root"`
	Args     []string      `json:"args"`
	Done     bool          `json:"done"`
	Success  bool          `json:"success"`
	ExitCode int           `json:"exit_code"`
	Started  time.Time     `json:"started,omitzero"`
	Finished time.Time     `json:"finished,omitzero"`
	Recipes  []RecipeState `json:"recipes"`
}

// Store records run events.
type Store struct {
	mu      sync.RWMutex
	snap    Snapshot
	byName  map[string]int
	started bool
}

// New creates an empty store.
func New() *Store {
	return &Store{byName: make(map[string]int)}
}

// Publish implements events.Sink.
func (s *Store) Publish(_ context.Context, ev events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case events.RunStarted:
		s.snap = Snapshot{RunID: ev.RunID, Root: ev.Recipe, Args: append([]string(nil), ev.Args...), Started: ev.Time}
		s.byName = make(map[string]int)
		s.started = true
	case events.PlanResolved:
		s.snap.Recipes = make([]RecipeState, 0, len(ev.Plan))
		for i, name := range ev.Plan {
			s.byName[name] = i
			s.snap.Recipes = append(s.snap.Recipes, RecipeState{Name: name, Status: StatusPending})
		}
	case events.RecipeStarted:
		if r := s.recipe(ev.Recipe); r != nil {
			r.Status = StatusRunning
			r.Started = ev.Time
		}
	case events.CommandStarted:
		if r := s.recipe(ev.Recipe); r != nil {
			r.Command = ev.Command
		}
	case events.RecipeFinished:
		if r := s.recipe(ev.Recipe); r != nil {
			r.Status = StatusFailure
			if ev.Success {
				r.Status = StatusSuccess
			}
			r.ExitCode = ev.ExitCode
			r.Error = ev.Error
			r.Finished = ev.Time
		}
	case events.RecipeSkipped:
		if r := s.recipe(ev.Recipe); r != nil {
			r.Status = StatusSkipped
		}
	case events.RunFinished:
		s.snap.Done = true
		s.snap.Success = ev.Success
		s.snap.ExitCode = ev.ExitCode
		s.snap.Finished = ev.Time
	}
}

// recipe returns the state of a planned recipe. Callers hold the lock.
func (s *Store) recipe(name string) *RecipeState {
	i, ok := s.byName[name]
	if !ok {
		return nil
	}
	return &s.snap.Recipes[i]
}

// Snapshot returns a copy of the current state and whether a run has been
// observed at all.
func (s *Store) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.snap
	out.Args = append([]string(nil), s.snap.Args...)
	out.Recipes = append([]RecipeState(nil), s.snap.Recipes...)
	return out, s.started
}

// Status returns the status of a recipe, StatusPending if unknown.
func (s *Store) Status(name string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r := s.recipe(name); r != nil {
		return r.Status
	}
	return StatusPending
}
