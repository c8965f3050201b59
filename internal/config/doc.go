// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package config defines the format-agnostic model of recipe files and the
// Loader interface that format-specific packages implement.
//
// Loading happens in two steps. Load discovers files, dispatches each one
// to the loader registered for its extension and collects the recipe
// definitions in file order. Build then turns the Model into a finalized
// recipe.Table, which is the single source of truth for the resolver and
// the executor. Concrete loaders live in the hcl and yaml packages.
package config
