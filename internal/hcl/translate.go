// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file translates decoded HCL blocks into the format-agnostic
// configuration model.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/recipegrid/internal/config"
	"github.com/specialistvlad/recipegrid/internal/ctxlog"
)

func translateRecipe(ctx context.Context, rb *recipeBlock) (*config.RecipeDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("recipe", rb.Name)
	logger.Debug("Translating HCL recipe to config model.", "params", len(rb.Params), "commands", len(rb.Commands))

	def := &config.RecipeDefinition{
		Name:        rb.Name,
		Description: rb.Description,
		DependsOn:   rb.DependsOn,
		Env:         rb.Env,
	}
	for _, pb := range rb.Params {
		p, err := translateParam(ctx, pb)
		if err != nil {
			return nil, fmt.Errorf("in recipe '%s': %w", rb.Name, err)
		}
		def.Params = append(def.Params, p)
	}
	for _, cb := range rb.Commands {
		def.Commands = append(def.Commands, &config.CommandDefinition{Args: cb.Args, Env: cb.Env})
	}
	return def, nil
}

// translateParam evaluates the default of a param block, if it was given.
func translateParam(ctx context.Context, pb *paramBlock) (*config.ParamDefinition, error) {
	p := &config.ParamDefinition{Name: pb.Name}
	if !isExprDefined(ctx, pb.Default, "default") {
		return p, nil
	}

	val, diags := pb.Default.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid default value for param '%s': %w", pb.Name, diags)
	}
	if val.IsNull() {
		return p, nil
	}

	s, err := ctyToString(val)
	if err != nil {
		return nil, fmt.Errorf("invalid default value for param '%s': %w", pb.Name, err)
	}
	p.Default = &s
	return p, nil
}

// ctyToString converts a primitive cty value to its string form.
func ctyToString(val cty.Value) (string, error) {
	if !val.Type().IsPrimitiveType() {
		return "", fmt.Errorf("expected a string, number or bool, got %s", val.Type().FriendlyName())
	}
	strVal, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", err
	}
	var s string
	if err := gocty.FromCtyValue(strVal, &s); err != nil {
		return "", err
	}
	return s, nil
}

// isExprDefined reports whether an optional attribute was present in the
// source. gohcl fills omitted hcl.Expression fields with a zero-width
// placeholder, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	defined := rng.End.Byte > rng.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName, "hcl_range", rng.String(), "is_defined", defined)
	return defined
}
