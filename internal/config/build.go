// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package config

import (
	"context"
	"maps"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/recipe"
)

// Build defines every recipe of the model, in order, and finalizes the
// table. Definition errors are returned unchanged.
func Build(ctx context.Context, m *Model) (*recipe.Table, error) {
	logger := ctxlog.FromContext(ctx)
	t := recipe.NewTable()

	for _, d := range m.Recipes {
		if err := t.Define(toRecipe(d)); err != nil {
			return nil, err
		}
	}
	if err := t.Finalize(ctx); err != nil {
		return nil, err
	}

	logger.Debug("Recipe table built.", "recipes", t.Len())
	return t, nil
}

func toRecipe(d *RecipeDefinition) *recipe.Recipe {
	r := &recipe.Recipe{
		Name:         d.Name,
		Description:  d.Description,
		Dependencies: append([]string(nil), d.DependsOn...),
		Env:          maps.Clone(d.Env),
		Source:       d.Source,
	}
	for _, p := range d.Params {
		r.Params = append(r.Params, recipe.Param{Name: p.Name, Default: p.Default})
	}
	for _, c := range d.Commands {
		r.Commands = append(r.Commands, recipe.Command{
			Args: append([]string(nil), c.Args...),
			Env:  maps.Clone(c.Env),
		})
	}
	return r
}
