// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package dag

import (
	"context"
	"errors"
	"strings"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/recipe"
)

// Plan is the dependency-respecting order in which recipes must run.
type Plan []string

// String renders the plan as "a -> b -> c".
func (p Plan) String() string {
	return strings.Join(p, " -> ")
}

// Index returns the position of name in the plan, or -1.
func (p Plan) Index(name string) int {
	for i, n := range p {
		if n == name {
			return i
		}
	}
	return -1
}

// resolver holds the traversal state of a single walk over the table.
type resolver struct {
	table *recipe.Table
	// permanent: recipes whose dependencies have all been planned.
	permanent map[string]bool
	// onPath maps recipes on the current recursion stack to their index in path.
	onPath map[string]int
	path   []string
	plan   Plan
}

func newResolver(t *recipe.Table) *resolver {
	return &resolver{
		table:     t,
		permanent: make(map[string]bool),
		onPath:    make(map[string]int),
	}
}

// Resolve computes the execution plan for root and its transitive
// dependencies. An unknown root is reported as *recipe.UnknownRecipeError,
// a cycle reachable from root as *CyclicDependencyError.
func Resolve(ctx context.Context, t *recipe.Table, root string) (Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving plan.", "root", root)

	if _, err := t.Lookup(root); err != nil {
		return nil, err
	}

	r := newResolver(t)
	if err := r.visit(root, ""); err != nil {
		return nil, err
	}

	logger.Debug("Plan resolved.", "root", root, "plan", r.plan.String())
	return r.plan, nil
}

// DetectCycles walks every recipe of the table in definition order and
// returns the first cycle found, including cycles that no particular root
// would reach.
func DetectCycles(ctx context.Context, t *recipe.Table) error {
	logger := ctxlog.FromContext(ctx)
	r := newResolver(t)
	for _, name := range t.Names() {
		if r.permanent[name] {
			continue
		}
		if err := r.visit(name, ""); err != nil {
			var cyc *CyclicDependencyError
			if errors.As(err, &cyc) {
				logger.Debug("Cycle detected.", "cycle", strings.Join(cyc.Cycle, " -> "))
			}
			return err
		}
	}
	return nil
}

// visit is a depth-first, post-order walk. parent is the recipe that led
// here and is only used to report dangling edges on unfinalized tables.
func (r *resolver) visit(name, parent string) error {
	if r.permanent[name] {
		return nil
	}
	if idx, ok := r.onPath[name]; ok {
		cycle := make([]string, 0, len(r.path)-idx+1)
		cycle = append(cycle, r.path[idx:]...)
		cycle = append(cycle, name)
		return &CyclicDependencyError{Cycle: cycle}
	}

	rec, err := r.table.Lookup(name)
	if err != nil {
		if parent != "" {
			return &recipe.DanglingDependencyError{From: parent, To: name}
		}
		return err
	}

	r.onPath[name] = len(r.path)
	r.path = append(r.path, name)

	for _, dep := range rec.Dependencies {
		if err := r.visit(dep, name); err != nil {
			return err
		}
	}

	r.path = r.path[:len(r.path)-1]
	delete(r.onPath, name)
	r.permanent[name] = true
	r.plan = append(r.plan, name)
	return nil
}
