// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file contains the placeholder grammar used inside command tokens.
//
// A placeholder is either positional, `{{1}}`, or named, `{{target}}`, where
// the name must be a declared parameter of the recipe. Named placeholders are
// resolved to their parameter's position, so both forms bind the same
// positional argument list supplied by the caller.
package recipe

import (
	"regexp"
	"strconv"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_-]*|[0-9]+)\s*\}\}`)

// placeholderRefs returns the raw references found in tok, in order.
func placeholderRefs(tok string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(tok, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// position resolves a reference to its 1-based argument position.
func (r *Recipe) position(ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 {
			return 0, &UnknownPlaceholderError{Recipe: r.Name, Placeholder: ref}
		}
		return n, nil
	}
	idx, ok := r.ParamIndex(ref)
	if !ok {
		return 0, &UnknownPlaceholderError{Recipe: r.Name, Placeholder: ref}
	}
	return idx + 1, nil
}

// RequiredArgs returns how many positional arguments a caller must supply
// for every placeholder in the recipe's commands to have a value. Positions
// backed by a parameter default do not count.
func (r *Recipe) RequiredArgs() (int, error) {
	required := 0
	for _, cmd := range r.Commands {
		for _, tok := range cmd.Args {
			for _, ref := range placeholderRefs(tok) {
				pos, err := r.position(ref)
				if err != nil {
					return 0, err
				}
				if pos <= len(r.Params) && r.Params[pos-1].Default != nil {
					continue
				}
				if pos > required {
					required = pos
				}
			}
		}
	}
	return required, nil
}

// Expand substitutes every placeholder in tok with its argument, falling
// back to parameter defaults. Callers are expected to have checked
// RequiredArgs first; a position with neither an argument nor a default
// expands to the empty string.
func (r *Recipe) Expand(tok string, args []string) (string, error) {
	var firstErr error
	out := placeholderPattern.ReplaceAllStringFunc(tok, func(match string) string {
		ref := strings.TrimSpace(match[2 : len(match)-2])
		pos, err := r.position(ref)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return match
		}
		if pos <= len(args) {
			return args[pos-1]
		}
		if pos <= len(r.Params) && r.Params[pos-1].Default != nil {
			return *r.Params[pos-1].Default
		}
		return ""
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
