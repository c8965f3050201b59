// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/specialistvlad/recipegrid/internal/ctxlog"
	"github.com/specialistvlad/recipegrid/internal/executor"
)

const defaultDotenv = ".env"

// loadEnviron builds the environment commands inherit: variables from the
// dotenv file, overridden by the process environment. A missing default
// dotenv file is not an error; a missing explicit one is.
func loadEnviron(ctx context.Context, dotenvPath string, processEnv []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	path := dotenvPath
	if path == "" {
		path = defaultDotenv
		if _, err := os.Stat(path); err != nil {
			logger.Debug("No dotenv file found.", "path", path)
			return processEnv, nil
		}
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dotenv file %s: %w", path, err)
	}
	logger.Debug("Dotenv file loaded.", "path", path, "vars", len(vars))

	return executor.MergeEnv(nil, vars, envMap(processEnv)), nil
}

func envMap(env []string) map[string]string {
	m := make(map[string]string, len(env))
	for _, kv := range env {
		k, v, _ := strings.Cut(kv, "=")
		m[k] = v
	}
	return m
}
