// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package yaml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/recipegrid/internal/config"
	"github.com/specialistvlad/recipegrid/internal/ctxlog"
)

// document is the top-level structure of a YAML recipe file.
type document struct {
	Recipes []recipeNode `yaml:"recipes"`
}

type recipeNode struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	DependsOn   []string          `yaml:"depends_on"`
	Env         map[string]scalar `yaml:"env"`
	Params      []paramNode       `yaml:"params"`
	Commands    []commandNode     `yaml:"commands"`
}

type paramNode struct {
	Name    string  `yaml:"name"`
	Default *scalar `yaml:"default"`
}

type commandNode struct {
	Args []scalar          `yaml:"args"`
	Env  map[string]scalar `yaml:"env"`
}

// scalar accepts any YAML scalar and keeps its literal text, so `port: 8080`
// and `debug: true` read as "8080" and "true".
type scalar string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*s = scalar(node.Value)
	return nil
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML recipe loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// LoadFile decodes a single YAML recipe file. An empty file holds no recipes.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*config.RecipeDefinition, error) {
	logger := ctxlog.FromContext(ctx).With("file", path)
	logger.Debug("Decoding YAML recipe file.")

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			logger.Debug("YAML recipe file is empty.")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}

	defs := make([]*config.RecipeDefinition, 0, len(doc.Recipes))
	for _, rn := range doc.Recipes {
		defs = append(defs, translateRecipe(rn, path))
	}

	logger.Debug("YAML recipe file decoded.", "recipes", len(defs))
	return defs, nil
}

func translateRecipe(rn recipeNode, path string) *config.RecipeDefinition {
	def := &config.RecipeDefinition{
		Name:        rn.Name,
		Description: rn.Description,
		DependsOn:   rn.DependsOn,
		Env:         toStringMap(rn.Env),
		Source:      path,
	}
	for _, pn := range rn.Params {
		p := &config.ParamDefinition{Name: pn.Name}
		if pn.Default != nil {
			v := string(*pn.Default)
			p.Default = &v
		}
		def.Params = append(def.Params, p)
	}
	for _, cn := range rn.Commands {
		args := make([]string, len(cn.Args))
		for i, a := range cn.Args {
			args[i] = string(a)
		}
		def.Commands = append(def.Commands, &config.CommandDefinition{Args: args, Env: toStringMap(cn.Env)})
	}
	return def
}

func toStringMap(m map[string]scalar) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = string(v)
	}
	return out
}
