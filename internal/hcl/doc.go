// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package hcl provides the HCL implementation of config.Loader.
//
// A recipe file holds any number of labelled recipe blocks:
//
//	recipe "test" {
//	  description = "Run the test suite"
//	  depends_on  = ["build"]
//	  env         = { GOFLAGS = "-count=1" }
//
//	  param "pkg" {
//	    default = "./..."
//	  }
//
//	  command {
//	    args = ["go", "test", "{{pkg}}"]
//	  }
//	}
//
// Parameter defaults may be any primitive value; they are converted to
// strings. Unknown blocks and attributes are rejected.
package hcl
