// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package orchestrator drives a single recipe run from request to result.
//
// A run moves through four phases: Idle, Resolving (the dependency plan is
// computed and every planned recipe is prepared), Running (recipes execute
// one at a time in plan order) and Done. Nothing is started until the whole
// plan has been resolved and prepared, so definition and argument errors
// never leave a run half-done.
//
// The first recipe that does not succeed ends the run; every later recipe
// in the plan is reported as skipped. Lifecycle events are published to an
// events.Sink at every step.
package orchestrator
