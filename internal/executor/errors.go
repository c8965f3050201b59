// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package executor

import (
	"fmt"
	"strings"
)

// ArgumentCountError is returned when a recipe references more positional
// arguments than the caller supplied and no default covers the gap.
type ArgumentCountError struct {
	Recipe   string
	Required int
	Supplied int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("recipe %q needs %d argument(s), got %d", e.Recipe, e.Required, e.Supplied)
}

// LaunchError is returned when a command cannot be started at all, e.g. the
// executable is missing. It points at the environment, not at the recipe.
type LaunchError struct {
	Recipe string
	Argv   []string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("recipe %q: cannot launch %q: %v", e.Recipe, strings.Join(e.Argv, " "), e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }
