// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Recipe structure, the named unit of work a user asks
// the runner to perform, together with its commands and parameters.
package recipe

import (
	"fmt"
	"strings"
)

// Recipe is a named, parameterized unit of work: an ordered list of commands
// and an ordered list of prerequisite recipe names.
type Recipe struct {
	Name        string
	Description string

	// Params are positional: the i-th parameter binds the i-th argument
	// supplied to the recipe.
	Params []Param

	// Dependencies run before this recipe, in the order they are listed.
	Dependencies []string

	// Env overrides the inherited environment for every command.
	Env map[string]string

	Commands []Command

	// Source names the file the recipe was loaded from, if any.
	Source string
}

// Param is a positional parameter of a recipe.
type Param struct {
	Name string
	// Default is used when the caller supplies fewer arguments than the
	// parameter's position. Nil means the argument is required.
	Default *string
}

// Command is a single command line of a recipe.
type Command struct {
	// Args holds the executable followed by its arguments. Tokens may contain
	// `{{N}}` or `{{name}}` placeholders.
	Args []string
	// Env overrides both the inherited environment and the recipe's Env.
	Env map[string]string
}

// String renders the command as a single space-separated line.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// ParamIndex returns the zero-based index of the named parameter.
func (r *Recipe) ParamIndex(name string) (int, bool) {
	for i, p := range r.Params {
		if p.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Validate checks the recipe in isolation: it has a name, its parameters
// are unique, every command has an executable, and every placeholder refers
// to a position or a declared parameter.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: recipe name must not be empty", ErrInvalidRecipe)
	}

	seen := make(map[string]struct{}, len(r.Params))
	for _, p := range r.Params {
		if p.Name == "" {
			return fmt.Errorf("%w: recipe %q declares a parameter without a name", ErrInvalidRecipe, r.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: recipe %q declares parameter %q twice", ErrInvalidRecipe, r.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	for i, cmd := range r.Commands {
		if len(cmd.Args) == 0 || cmd.Args[0] == "" {
			return fmt.Errorf("%w: recipe %q: command %d has no executable", ErrInvalidRecipe, r.Name, i+1)
		}
		for _, tok := range cmd.Args {
			for _, ref := range placeholderRefs(tok) {
				if _, err := r.position(ref); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
