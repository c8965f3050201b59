// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// envPrefix prefixes the environment variable backing each persistent flag.
const envPrefix = "RECIPEGRID_"

// flagEnv maps persistent flag names to environment variables.
var flagEnv = map[string]string{
	"file":             envPrefix + "FILE",
	"dotenv":           envPrefix + "DOTENV",
	"log-level":        envPrefix + "LOG_LEVEL",
	"log-format":       envPrefix + "LOG_FORMAT",
	"color":            envPrefix + "COLOR",
	"status-port":      envPrefix + "STATUS_PORT",
	"events-url":       envPrefix + "EVENTS_URL",
	"events-namespace": envPrefix + "EVENTS_NAMESPACE",
	"grace-period":     envPrefix + "GRACE_PERIOD",
	"dry-run":          envPrefix + "DRY_RUN",
}

// applyEnv sets every flag that was not given on the command line from its
// environment variable, if present. lookup is os.LookupEnv outside tests.
func applyEnv(cmd *cobra.Command, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	flags := cmd.Flags()
	for name, env := range flagEnv {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := lookup(env)
		if !ok || v == "" {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", v, env, err)
		}
	}
	return nil
}
