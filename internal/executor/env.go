// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package executor

import (
	"sort"
	"strings"
)

// MergeEnv layers environment overrides on top of base, a list of KEY=VALUE
// entries such as os.Environ(). Later layers win on key collisions. Keys
// from base keep their position; new keys are appended sorted per layer so
// the result is deterministic.
func MergeEnv(base []string, layers ...map[string]string) []string {
	out := make([]string, 0, len(base))
	index := make(map[string]int, len(base))

	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if i, ok := index[key]; ok {
			out[i] = kv
			continue
		}
		index[key] = len(out)
		out = append(out, kv)
	}

	for _, layer := range layers {
		keys := make([]string, 0, len(layer))
		for k := range layer {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			kv := k + "=" + layer[k]
			if i, ok := index[k]; ok {
				out[i] = kv
				continue
			}
			index[k] = len(out)
			out = append(out, kv)
		}
	}
	return out
}
