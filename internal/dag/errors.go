// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package dag

import (
	"fmt"
	"strings"
)

// CyclicDependencyError reports a dependency cycle. Cycle lists every recipe
// on the cycle in traversal order and repeats the first one at the end, e.g.
// [a b c a].
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency: %s", strings.Join(e.Cycle, " -> "))
}

// Members returns the distinct recipes on the cycle.
func (e *CyclicDependencyError) Members() []string {
	if len(e.Cycle) < 2 {
		return e.Cycle
	}
	return e.Cycle[:len(e.Cycle)-1]
}
