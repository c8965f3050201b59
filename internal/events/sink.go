// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package events

import "context"

// Sink consumes run events. Implementations must not block for long; the
// run waits for Publish to return.
type Sink interface {
	Publish(ctx context.Context, ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, ev Event)

// Publish calls f(ctx, ev).
func (f SinkFunc) Publish(ctx context.Context, ev Event) { f(ctx, ev) }

type discard struct{}

func (discard) Publish(context.Context, Event) {}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

type multi []Sink

func (m multi) Publish(ctx context.Context, ev Event) {
	for _, s := range m {
		s.Publish(ctx, ev)
	}
}

// Multi returns a Sink that publishes to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return Discard
	case 1:
		return out[0]
	}
	return out
}
