// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package events defines the lifecycle events of a recipe run and the sinks
// that consume them.
//
// The orchestrator publishes an Event at every step of a run. Sinks never
// influence the run: Publish has no error return, and a sink that cannot
// deliver an event logs the problem and carries on.
//
// Available sinks:
//   - Discard drops everything.
//   - LogSink writes every event to the context logger.
//   - SocketIOSink forwards events to a socket.io server.
//   - Multi fans a single event out to several sinks.
package events
