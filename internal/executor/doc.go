// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package executor runs the command lines of a single recipe as child
// processes.
//
// For each command, in declared order, the executor substitutes the
// recipe's positional arguments into the argument tokens, layers the
// recipe's and the command's environment overrides on top of the inherited
// environment, and runs the process with the caller's standard streams. The
// first command that exits non-zero, cannot be launched, or is interrupted
// ends the recipe; the remaining commands are not started.
//
// Cancelling the context passed to Execute forwards an interrupt to the
// running child and, if it has not exited after the grace period, kills it.
// The command is then reported as an interrupted failure.
package executor
