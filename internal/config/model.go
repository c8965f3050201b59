// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package config

// Model is the unified, format-agnostic representation of every recipe
// file that was loaded.
type Model struct {
	// Files lists the loaded files in load order.
	Files []string
	// Recipes holds definitions in file order, then in-file order.
	Recipes []*RecipeDefinition
}

// RecipeDefinition is the format-agnostic representation of one recipe.
type RecipeDefinition struct {
	Name        string
	Description string
	DependsOn   []string
	Env         map[string]string
	Params      []*ParamDefinition
	Commands    []*CommandDefinition
	// Source is the file the definition was read from.
	Source string
}

// ParamDefinition defines a positional parameter of a recipe.
type ParamDefinition struct {
	Name string
	// Default is nil when the parameter is required.
	Default *string
}

// CommandDefinition is one command line of a recipe.
type CommandDefinition struct {
	Args []string
	Env  map[string]string
}
