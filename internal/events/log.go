// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package events

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
)

// LogSink writes events to the logger found in the publishing context.
// Run boundaries and failures are logged at Info, everything else at Debug.
type LogSink struct{}

// Publish implements Sink.
func (LogSink) Publish(ctx context.Context, ev Event) {
	logger := ctxlog.FromContext(ctx)

	attrs := []any{"event", string(ev.Type)}
	if ev.Recipe != "" {
		attrs = append(attrs, "recipe", ev.Recipe)
	}

	level := slog.LevelDebug
	switch ev.Type {
	case RunStarted:
		level = slog.LevelInfo
		attrs = append(attrs, "args", ev.Args)
	case PlanResolved:
		attrs = append(attrs, "plan", ev.Plan)
	case CommandStarted:
		attrs = append(attrs, "command", ev.Command, "argv", ev.Argv)
	case RecipeFinished:
		attrs = append(attrs, "success", ev.Success, "exit_code", ev.ExitCode, "duration", ev.Duration)
		if !ev.Success {
			level = slog.LevelInfo
		}
	case RunFinished:
		level = slog.LevelInfo
		attrs = append(attrs, "success", ev.Success, "exit_code", ev.ExitCode, "duration", ev.Duration)
	}
	if ev.Error != "" {
		attrs = append(attrs, "error", ev.Error)
	}

	logger.Log(ctx, level, "Run event.", attrs...)
}
