// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package executor

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const (
	// ExitLaunch is the exit code reported for commands that could not be started.
	ExitLaunch = 127
	// ExitInterrupted is reported for an interrupted command that still exited 0,
	// or that never got to start.
	ExitInterrupted = 130
)

// Invocation is a fully prepared command line: placeholders substituted and
// environment merged.
type Invocation struct {
	Recipe string
	// Index is the zero-based position of the command within its recipe.
	Index int
	Args  []string
	Env   []string
}

// String renders the invocation's argv, quoting tokens that need it.
func (inv Invocation) String() string {
	return FormatArgv(inv.Args)
}

// FormatArgv joins argv for display, quoting empty tokens and tokens with
// whitespace or quotes.
func FormatArgv(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			parts[i] = strconv.Quote(a)
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}

// CommandResult is the result of a single command.
type CommandResult struct {
	Index    int
	Argv     []string
	ExitCode int
	// Interrupted is set when the run context was cancelled while the
	// command was pending or running.
	Interrupted bool
	// Err is a *LaunchError, or an I/O error surfaced by the process wait.
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the command ran and exited with status 0.
func (c CommandResult) Succeeded() bool {
	return c.Err == nil && c.ExitCode == 0 && !c.Interrupted
}

// Outcome is the result of running one recipe.
type Outcome struct {
	Recipe string
	// Commands holds a result per command that was attempted, in order.
	Commands []CommandResult
	// Err is set when the recipe could not be prepared, e.g. an
	// *ArgumentCountError. No command runs in that case.
	Err      error
	Duration time.Duration
}

// Succeeded reports whether every command of the recipe succeeded.
func (o *Outcome) Succeeded() bool {
	if o.Err != nil {
		return false
	}
	for _, c := range o.Commands {
		if !c.Succeeded() {
			return false
		}
	}
	return true
}

// Failed returns the command that ended the recipe, or nil on success or
// when the recipe failed before any command ran.
func (o *Outcome) Failed() *CommandResult {
	for i := range o.Commands {
		if !o.Commands[i].Succeeded() {
			return &o.Commands[i]
		}
	}
	return nil
}

// ExitCode returns 0 on success, ExitLaunch for launch errors, and the
// failing command's exit code otherwise.
func (o *Outcome) ExitCode() int {
	failed := o.Failed()
	if failed == nil {
		if o.Err != nil {
			return 1
		}
		return 0
	}
	var launchErr *LaunchError
	if errors.As(failed.Err, &launchErr) {
		return ExitLaunch
	}
	if failed.ExitCode > 0 {
		return failed.ExitCode
	}
	return 1
}

// exitCode extracts the exit status of a finished process. A process killed
// by a signal reports 128+signal, the shell convention.
func exitCode(ps *os.ProcessState) int {
	if ps == nil {
		return -1
	}
	if code := ps.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return -1
}
