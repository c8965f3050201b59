// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package cli

import (
	"errors"

	"github.com/specialistvlad/recipegrid/internal/config"
	"github.com/specialistvlad/recipegrid/internal/dag"
	"github.com/specialistvlad/recipegrid/internal/executor"
	"github.com/specialistvlad/recipegrid/internal/recipe"
)

// Process exit codes besides the failing recipe's own code.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitDefinition = 125
)

// ExitError is a custom error type that includes a specific exit code.
// An empty Message means there is nothing left to print.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError wraps err as an ExitUsage error.
func usageError(err error) *ExitError {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// toExitError maps an application error to its exit code: usage problems
// (including missing recipe arguments) exit 2, definition and resolution
// problems exit 125, anything else exits 1.
func toExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var (
		argErr      *executor.ArgumentCountError
		dupErr      *recipe.DuplicateRecipeError
		unknownErr  *recipe.UnknownRecipeError
		danglingErr *recipe.DanglingDependencyError
		placeErr    *recipe.UnknownPlaceholderError
		cycleErr    *dag.CyclicDependencyError
		loadErr     *config.LoadError
	)
	switch {
	case errors.As(err, &argErr):
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	case errors.As(err, &dupErr),
		errors.As(err, &unknownErr),
		errors.As(err, &danglingErr),
		errors.As(err, &placeErr),
		errors.As(err, &cycleErr),
		errors.As(err, &loadErr),
		errors.Is(err, recipe.ErrInvalidRecipe),
		errors.Is(err, config.ErrNoRecipeFiles):
		return &ExitError{Code: ExitDefinition, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}
