// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/recipegrid/internal/config"
	"github.com/specialistvlad/recipegrid/internal/ctxlog"
)

// Load reads the dotenv file and the recipe files, and builds the finalized
// recipe table. It is a no-op once it has succeeded.
func (a *App) Load(ctx context.Context) error {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	if a.table != nil {
		return nil
	}

	env, err := loadEnviron(ctx, a.config.DotenvPath, a.environ)
	if err != nil {
		return err
	}

	paths := a.recipePaths()
	if len(paths) == 0 {
		return fmt.Errorf("%w: pass --file or create one of %v", config.ErrNoRecipeFiles, DefaultRecipeFiles)
	}
	logger.Debug("Loading recipes...", "paths", paths)

	model, err := config.Load(ctx, a.loaders, paths...)
	if err != nil {
		return err
	}

	table, err := config.Build(ctx, model)
	if err != nil {
		return err
	}

	a.env = env
	a.table = table
	logger.Info("Recipes loaded.", "files", len(model.Files), "recipes", table.Len())
	return nil
}

// recipePaths returns the configured paths, or the default recipe files
// that exist in the working directory.
func (a *App) recipePaths() []string {
	if len(a.config.RecipePaths) > 0 {
		return a.config.RecipePaths
	}
	var found []string
	for _, name := range DefaultRecipeFiles {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			found = append(found, name)
		}
	}
	return found
}
