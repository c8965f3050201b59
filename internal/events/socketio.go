// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package events

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
)

// DefaultSocketIOEvent is the socket.io event name used when none is configured.
const DefaultSocketIOEvent = "recipegrid"

// SocketIOConfig describes the socket.io endpoint that receives run events.
type SocketIOConfig struct {
	// URL is the server URL; its path becomes the socket.io path.
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// SocketIOSink emits every run event on a socket.io connection.
type SocketIOSink struct {
	event      string
	mu         sync.Mutex
	emit       func(event string, payload any)
	disconnect func()
	closed     bool
}

// DialSocketIO connects to the configured server and returns a sink bound
// to the connection. It blocks until the connection is established, the
// timeout expires, or ctx is cancelled.
func DialSocketIO(ctx context.Context, cfg SocketIOConfig) (*SocketIOSink, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", cfg.URL)

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid socket.io URL %q: scheme and host are required", cfg.URL)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // opt-in via configuration
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to socket.io server.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connected <- err
	})

	logger.Debug("Connecting to socket.io server.")
	io.Connect()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", timeout)
	}

	return newSocketIOSink(cfg.Event,
		func(event string, payload any) { io.Emit(event, payload) },
		func() { io.Disconnect() },
	), nil
}

func newSocketIOSink(event string, emit func(string, any), disconnect func()) *SocketIOSink {
	if event == "" {
		event = DefaultSocketIOEvent
	}
	return &SocketIOSink{event: event, emit: emit, disconnect: disconnect}
}

// Publish implements Sink. Events published after Close are dropped.
func (s *SocketIOSink) Publish(ctx context.Context, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	ctxlog.FromContext(ctx).Debug("Emitting run event.", "sink", "socketio", "event", s.event, "type", string(ev.Type))
	s.emit(s.event, ev.Payload())
}

// Close disconnects from the server. It is safe to call more than once.
func (s *SocketIOSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.disconnect != nil {
		s.disconnect()
	}
	return nil
}
