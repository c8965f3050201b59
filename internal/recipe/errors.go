// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package recipe

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecipe marks a recipe that is malformed on its own.
	ErrInvalidRecipe = errors.New("invalid recipe")
	// ErrTableFinalized is returned by Define once the table has been sealed.
	ErrTableFinalized = errors.New("recipe table is finalized")
)

// DuplicateRecipeError is returned when a recipe name is defined twice.
type DuplicateRecipeError struct {
	Name string
	// Sources are the files holding the first and second definition, when known.
	Sources [2]string
}

func (e *DuplicateRecipeError) Error() string {
	if e.Sources[0] != "" || e.Sources[1] != "" {
		return fmt.Sprintf("duplicate recipe %q (defined in %s and %s)", e.Name, e.Sources[0], e.Sources[1])
	}
	return fmt.Sprintf("duplicate recipe %q", e.Name)
}

// UnknownRecipeError is returned when a recipe name is not in the table.
type UnknownRecipeError struct {
	Name string
}

func (e *UnknownRecipeError) Error() string {
	return fmt.Sprintf("unknown recipe %q", e.Name)
}

// DanglingDependencyError is returned when recipe From depends on To, and
// To is not defined.
type DanglingDependencyError struct {
	From string
	To   string
}

func (e *DanglingDependencyError) Error() string {
	return fmt.Sprintf("recipe %q depends on undefined recipe %q", e.From, e.To)
}

// UnknownPlaceholderError is returned when a command token references a
// parameter that the recipe does not declare.
type UnknownPlaceholderError struct {
	Recipe      string
	Placeholder string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("recipe %q: placeholder {{%s}} does not name a parameter or a position", e.Recipe, e.Placeholder)
}
