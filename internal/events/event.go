// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package events

import "time"

// Type identifies the kind of a lifecycle event.
type Type string

const (
	RunStarted     Type = "run.started"
	PlanResolved   Type = "plan.resolved"
	RecipeStarted  Type = "recipe.started"
	CommandStarted Type = "command.started"
	RecipeFinished Type = "recipe.finished"
	RecipeSkipped  Type = "recipe.skipped"
	RunFinished    Type = "run.finished"
)

// Event is a single lifecycle notification. Fields that do not apply to a
// given Type are left at their zero value.
type Event struct {
	Type   Type   `json:"type"`
	RunID  string `json:"run_id"`
	Recipe string `json:"recipe,omitempty"`
	// Command is the 1-based index of the command within its recipe.
	Command int `json:"command,omitempty"`
	// Argv is the substituted command line of a command.started event.
	Argv     []string  `json:"argv,omitempty"`
	ExitCode int       `json:"exit_code"`
	Success  bool      `json:"success"`
	Plan     []string  `json:"plan,omitempty"`
	Args     []string  `json:"args,omitempty"`
	Error    string    `json:"error,omitempty"`
	Duration string    `json:"duration,omitempty"`
	Time     time.Time `json:"time"`
}

// Payload renders the event as a plain map, the shape socket.io clients
// serialize.
func (e Event) Payload() map[string]any {
	p := map[string]any{
		"type":      string(e.Type),
		"run_id":    e.RunID,
		"exit_code": e.ExitCode,
		"success":   e.Success,
		"time":      e.Time.UTC().Format(time.RFC3339Nano),
	}
	if e.Recipe != "" {
		p["recipe"] = e.Recipe
	}
	if e.Command > 0 {
		p["command"] = e.Command
	}
	if len(e.Argv) > 0 {
		p["argv"] = e.Argv
	}
	if len(e.Plan) > 0 {
		p["plan"] = e.Plan
	}
	if len(e.Args) > 0 {
		p["args"] = e.Args
	}
	if e.Error != "" {
		p["error"] = e.Error
	}
	if e.Duration != "" {
		p["duration"] = e.Duration
	}
	return p
}
