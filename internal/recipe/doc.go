// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package recipe defines the Recipe model and the Table that holds every
// recipe known to a single invocation.
//
// Why a Table and not a package-level registry?
//
// Recipes are loaded once at startup, validated once, and then only read.
// Holding them in an explicit Table that is passed by reference to the
// resolver and orchestrator keeps that lifecycle visible: a Table is built
// with Define, sealed with Finalize, and from then on it is immutable. Two
// runs against the same Table can proceed side by side without locks because
// nothing writes to it.
//
// Why validate eagerly?
//
// A dependency on a recipe that does not exist, or a `{{name}}` placeholder
// that names no parameter, is a mistake in the recipe file, not in the
// command being run. Finalize reports those mistakes before any process is
// started, so a run never fails halfway through because of a typo three
// recipes down the plan.
package recipe
