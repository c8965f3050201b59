// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/orchestrator"
	"github.com/specialistvlad/recipegrid/internal/runstate"
)

// statusResponse is the body of GET /status.
type statusResponse struct {
	Phase string             `json:"phase"`
	Run   *runstate.Snapshot `json:"run"`
}

// statusHandler serves /health and /status. Request logs go to the logger
// carried by ctx.
func (a *App) statusHandler(ctx context.Context, orch *orchestrator.Orchestrator) http.Handler {
	logger := ctxlog.FromContext(ctx)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("Status endpoint hit.", "remote_addr", r.RemoteAddr)
		resp := statusResponse{Phase: orch.Phase().String()}
		if snap, ok := a.store.Snapshot(); ok {
			resp.Run = &snap
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("Failed to encode status response.", "error", err)
		}
	})

	return mux
}

// serveStatus runs srv on ln until the run finishes or ctx is cancelled,
// then shuts it down gracefully.
func (a *App) serveStatus(ctx context.Context, srv *http.Server, ln net.Listener, runDone <-chan struct{}) error {
	logger := ctxlog.FromContext(ctx)

	go func() {
		select {
		case <-runDone:
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		logger.Debug("Shutting down status server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Status server shutdown failed", "error", err)
		}
	}()

	logger.Info("Status server starting", "address", fmt.Sprintf("http://%s/status", ln.Addr()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server failed: %w", err)
	}
	logger.Debug("Status server shut down gracefully.")
	return nil
}
