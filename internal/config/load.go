// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/fsutil"
)

// Load discovers recipe files under paths and decodes each one with the
// loader registered for its extension. Directories are searched
// recursively for known extensions; files named explicitly must have one.
func Load(ctx context.Context, loaders []Loader, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading recipe files.", "paths", paths)

	byExt := make(map[string]Loader)
	var exts []string
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			ext = strings.ToLower(ext)
			byExt[ext] = l
			exts = append(exts, ext)
		}
	}

	files, err := fsutil.FindFiles(paths, exts...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRecipeFiles, strings.Join(paths, ", "))
	}
	logger.Debug("Discovered recipe files.", "count", len(files))

	model := &Model{}
	for _, file := range files {
		l, ok := byExt[strings.ToLower(filepath.Ext(file))]
		if !ok {
			return nil, &LoadError{Path: file, Err: fmt.Errorf("unsupported file extension %q", filepath.Ext(file))}
		}
		defs, err := l.LoadFile(ctx, file)
		if err != nil {
			return nil, &LoadError{Path: file, Err: err}
		}
		for _, d := range defs {
			if d.Source == "" {
				d.Source = file
			}
		}
		model.Files = append(model.Files, file)
		model.Recipes = append(model.Recipes, defs...)
		logger.Debug("Loaded recipe file.", "file", file, "recipes", len(defs))
	}

	logger.Debug("Recipe loading complete.", "files", len(model.Files), "recipes", len(model.Recipes))
	return model, nil
}
