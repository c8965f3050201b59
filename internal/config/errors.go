// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package config

import (
	"errors"
	"fmt"
)

// ErrNoRecipeFiles is returned when none of the given paths holds a recipe file.
var ErrNoRecipeFiles = errors.New("no recipe files found")

// LoadError wraps a failure to read or decode a recipe file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
