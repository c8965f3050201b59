// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package dag is the "Planning Layer" of the application. It walks the
// dependency edges of a recipe.Table from a requested recipe and produces a
// linear Plan in which every recipe appears after all of its dependencies.
//
// The traversal is a depth-first, post-order walk that follows dependencies
// in their declared order, so identical tables always produce identical
// plans. A recipe reachable through several paths appears once, at the
// position of its first completed visit. Revisiting a recipe that is still on
// the current path is a cycle and is reported as *CyclicDependencyError.
package dag
