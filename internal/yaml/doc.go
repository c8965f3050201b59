// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package yaml provides the YAML implementation of config.Loader.
//
// Recipes are listed under a top-level `recipes` sequence so that
// definition order is preserved:
//
//	recipes:
//	  - name: test
//	    depends_on: [build]
//	    params:
//	      - name: pkg
//	        default: ./...
//	    commands:
//	      - args: [go, test, "{{pkg}}"]
//
// Unknown keys are rejected.
package yaml
