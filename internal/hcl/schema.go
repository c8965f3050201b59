// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes all top-level blocks of a recipe file.
type fileRoot struct {
	Recipes []*recipeBlock `hcl:"recipe,block"`
}

// recipeBlock represents a `recipe` block.
type recipeBlock struct {
	Name        string            `hcl:"name,label"`
	Description string            `hcl:"description,optional"`
	DependsOn   []string          `hcl:"depends_on,optional"`
	Env         map[string]string `hcl:"env,optional"`
	Params      []*paramBlock     `hcl:"param,block"`
	Commands    []*commandBlock   `hcl:"command,block"`
}

// paramBlock represents a `param` block inside a recipe.
type paramBlock struct {
	Name    string         `hcl:"name,label"`
	Default hcl.Expression `hcl:"default,optional"`
}

// commandBlock represents a `command` block inside a recipe.
type commandBlock struct {
	Args []string          `hcl:"args"`
	Env  map[string]string `hcl:"env,optional"`
}
