// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package config

import "context"

// Loader is the interface for a format-specific recipe file loader.
type Loader interface {
	// Extensions lists the file extensions the loader handles, with the
	// leading dot, e.g. ".hcl".
	Extensions() []string

	// LoadFile reads a single file and returns its recipe definitions in
	// the order they appear.
	LoadFile(ctx context.Context, path string) ([]*RecipeDefinition, error)
}
