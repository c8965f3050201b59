// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/events"
	"github.com/specialistvlad/recipegrid/internal/orchestrator"
)

// Run executes root and its dependencies and prints a summary. A nil
// Result with a nil error means a dry run. Definition, resolution and
// argument errors are returned before any command starts; command failures
// are reported in the Result.
func (a *App) Run(ctx context.Context, root string, args []string) (*orchestrator.Result, error) {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.", "root", root, "args", args)

	if err := a.Load(ctx); err != nil {
		return nil, err
	}

	if a.config.DryRun {
		logger.Debug("Dry run requested, printing plan.")
		return nil, a.Plan(ctx, root, args)
	}

	sinks := []events.Sink{events.LogSink{}, a.store}
	if a.config.EventsURL != "" {
		sio, err := events.DialSocketIO(ctx, events.SocketIOConfig{
			URL:       a.config.EventsURL,
			Namespace: a.config.EventsNamespace,
		})
		if err != nil {
			logger.Warn("Run events will not be published.", "url", a.config.EventsURL, "error", err)
		} else {
			defer sio.Close()
			sinks = append(sinks, sio)
		}
	}
	orch := a.newOrchestrator(events.Multi(sinks...))

	// The listener is opened before the run so that a busy port fails fast.
	var listener net.Listener
	if a.config.StatusPort > 0 {
		ln, err := net.Listen("tcp", ":"+strconv.Itoa(a.config.StatusPort))
		if err != nil {
			return nil, err
		}
		listener = ln
	}

	g, gctx := errgroup.WithContext(ctx)
	runDone := make(chan struct{})

	if listener != nil {
		srv := &http.Server{Handler: a.statusHandler(gctx, orch)}
		g.Go(func() error {
			return a.serveStatus(gctx, srv, listener, runDone)
		})
	}

	var res *orchestrator.Result
	g.Go(func() error {
		defer close(runDone)
		var err error
		res, err = orch.Execute(gctx, root, args)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.printer(a.errW).Summary(res)
	logger.Debug("App.Run method finished.", "exit_code", res.ExitCode())
	return res, nil
}
