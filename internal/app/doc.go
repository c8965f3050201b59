// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle, decoupled from any
// specific entrypoint like a CLI.
//
// An App loads recipe files into a finalized table once, then serves any
// number of List, Plan, Check and Run calls against it. Run wires the
// executor, the orchestrator, the event sinks and the optional status
// server together for a single recipe invocation.
package app
