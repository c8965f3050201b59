// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Table, the registry of recipe definitions for one
// process invocation.
package recipe

import (
	"context"
	"fmt"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
)

// Table maps recipe names to definitions. It is built with Define, sealed
// with Finalize, and read-only afterwards. A finalized Table is safe for
// concurrent use; recipes returned by Lookup must not be modified.
type Table struct {
	recipes   map[string]*Recipe
	order     []string
	finalized bool
}

// NewTable creates an empty, unsealed table.
func NewTable() *Table {
	return &Table{recipes: make(map[string]*Recipe)}
}

// Define adds a recipe to the table. It fails with *DuplicateRecipeError if
// the name is taken, and with ErrTableFinalized once Finalize has succeeded.
func (t *Table) Define(r *Recipe) error {
	if t.finalized {
		return fmt.Errorf("%w: cannot define %q", ErrTableFinalized, r.Name)
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if prev, ok := t.recipes[r.Name]; ok {
		return &DuplicateRecipeError{Name: r.Name, Sources: [2]string{prev.Source, r.Source}}
	}
	t.recipes[r.Name] = r
	t.order = append(t.order, r.Name)
	return nil
}

// Lookup returns the named recipe or *UnknownRecipeError.
func (t *Table) Lookup(name string) (*Recipe, error) {
	r, ok := t.recipes[name]
	if !ok {
		return nil, &UnknownRecipeError{Name: name}
	}
	return r, nil
}

// Finalize checks, in definition order, that every dependency names a
// defined recipe, and seals the table. The first dangling reference is
// reported as *DanglingDependencyError. Calling Finalize on a sealed table
// is a no-op.
func (t *Table) Finalize(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if t.finalized {
		return nil
	}
	for _, name := range t.order {
		for _, dep := range t.recipes[name].Dependencies {
			if _, ok := t.recipes[dep]; !ok {
				return &DanglingDependencyError{From: name, To: dep}
			}
		}
	}
	t.finalized = true
	logger.Debug("Recipe table finalized.", "recipes", len(t.order))
	return nil
}

// Finalized reports whether Finalize has succeeded.
func (t *Table) Finalized() bool {
	return t.finalized
}

// Names returns recipe names in definition order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of defined recipes.
func (t *Table) Len() int {
	return len(t.order)
}
