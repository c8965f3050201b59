// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/recipe"
)

// DefaultGracePeriod is how long an interrupted child may take to exit
// before it is killed.
const DefaultGracePeriod = 5 * time.Second

// Executor runs recipe commands as child processes. The zero value is not
// usable; construct one with New.
type Executor struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	environ     []string
	gracePeriod time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithOutput sets the writers that children inherit as stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithStdin sets the reader children inherit as stdin.
func WithStdin(r io.Reader) Option {
	return func(e *Executor) { e.stdin = r }
}

// WithEnviron replaces the inherited environment (os.Environ() by default).
func WithEnviron(env []string) Option {
	return func(e *Executor) { e.environ = env }
}

// WithGracePeriod sets the time between forwarding an interrupt and killing
// the child. Non-positive values keep the default.
func WithGracePeriod(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.gracePeriod = d
		}
	}
}

// New creates an Executor that inherits the current process's streams and
// environment unless overridden by options.
func New(opts ...Option) *Executor {
	e := &Executor{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		environ:     os.Environ(),
		gracePeriod: DefaultGracePeriod,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Hook is called right before each command is started.
type Hook func(ctx context.Context, inv Invocation)

// Prepare substitutes args into every command of r and merges environments.
// It fails with *ArgumentCountError when fewer arguments are supplied than
// the commands reference; no process is involved.
func (e *Executor) Prepare(r *recipe.Recipe, args []string) ([]Invocation, error) {
	required, err := r.RequiredArgs()
	if err != nil {
		return nil, err
	}
	if len(args) < required {
		return nil, &ArgumentCountError{Recipe: r.Name, Required: required, Supplied: len(args)}
	}

	invs := make([]Invocation, 0, len(r.Commands))
	for i, c := range r.Commands {
		argv := make([]string, len(c.Args))
		for j, tok := range c.Args {
			argv[j], err = r.Expand(tok, args)
			if err != nil {
				return nil, err
			}
		}
		invs = append(invs, Invocation{
			Recipe: r.Name,
			Index:  i,
			Args:   argv,
			Env:    MergeEnv(e.environ, r.Env, c.Env),
		})
	}
	return invs, nil
}

// Run prepares and executes every command of r.
func (e *Executor) Run(ctx context.Context, r *recipe.Recipe, args []string) *Outcome {
	invs, err := e.Prepare(r, args)
	if err != nil {
		return &Outcome{Recipe: r.Name, Err: err}
	}
	return e.Execute(ctx, r.Name, invs, nil)
}

// Execute runs prepared invocations in order and stops at the first one
// that does not succeed. hook may be nil.
func (e *Executor) Execute(ctx context.Context, name string, invs []Invocation, hook Hook) *Outcome {
	logger := ctxlog.FromContext(ctx).With("recipe", name)
	out := &Outcome{Recipe: name}
	start := time.Now()

	for _, inv := range invs {
		if hook != nil {
			hook(ctx, inv)
		}
		res := e.runOne(ctx, inv)
		out.Commands = append(out.Commands, res)
		if !res.Succeeded() {
			logger.Debug("Command failed, skipping the rest of the recipe.",
				"command", inv.Index+1, "exit_code", res.ExitCode, "interrupted", res.Interrupted, "remaining", len(invs)-inv.Index-1)
			break
		}
	}

	out.Duration = time.Since(start)
	return out
}

// runOne starts a single child and waits for it.
func (e *Executor) runOne(ctx context.Context, inv Invocation) CommandResult {
	logger := ctxlog.FromContext(ctx).With("recipe", inv.Recipe, "command", inv.Index+1)
	res := CommandResult{Index: inv.Index, Argv: inv.Args}

	if ctx.Err() != nil {
		logger.Debug("Context cancelled, command not started.")
		res.Interrupted = true
		res.ExitCode = ExitInterrupted
		return res
	}

	cmd := exec.CommandContext(ctx, inv.Args[0], inv.Args[1:]...) //nolint:gosec // running user commands is the purpose of this package
	cmd.Env = inv.Env
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	// Forward the interrupt instead of the default SIGKILL; WaitDelay
	// escalates to a kill if the child ignores it.
	cmd.Cancel = func() error {
		logger.Debug("Forwarding interrupt to child.", "pid", cmd.Process.Pid)
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = e.gracePeriod

	logger.Debug("Starting command.", "argv", inv.String())
	start := time.Now()
	if err := cmd.Start(); err != nil {
		res.Err = &LaunchError{Recipe: inv.Recipe, Argv: inv.Args, Err: err}
		res.ExitCode = ExitLaunch
		logger.Debug("Command could not be launched.", "error", err)
		return res
	}

	waitErr := cmd.Wait()
	res.Duration = time.Since(start)
	res.ExitCode = exitCode(cmd.ProcessState)

	if ctx.Err() != nil {
		res.Interrupted = true
		if res.ExitCode <= 0 {
			res.ExitCode = ExitInterrupted
		}
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) && !res.Interrupted && !errors.Is(waitErr, exec.ErrWaitDelay) {
		res.Err = waitErr
	}

	logger.Debug("Command finished.", "exit_code", res.ExitCode, "duration", res.Duration)
	return res
}
