// Package yamlcfg provides the YAML implementation of config.Loader.
//
//	tags:
//	  - name: physics
//	    after: [input]
//	systems:
//	  - name: integrate
//	    handler: print
//	    tags: [physics]
//	    arguments:
//	      message: "step ${USER}"
//
// String arguments are expanded against the environment.
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/phasegrid/internal/config"
	"github.com/vk/phasegrid/internal/ctxlog"
	"github.com/vk/phasegrid/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// fileRoot mirrors the layout of a pipeline file.
type fileRoot struct {
	Tags    []tagDoc    `yaml:"tags"`
	Systems []systemDoc `yaml:"systems"`
}

type tagDoc struct {
	Name   string   `yaml:"name"`
	Before []string `yaml:"before"`
	After  []string `yaml:"after"`
}

type systemDoc struct {
	Name      string         `yaml:"name"`
	Handler   string         `yaml:"handler"`
	Tags      []string       `yaml:"tags"`
	Before    []string       `yaml:"before"`
	After     []string       `yaml:"after"`
	Arguments map[string]any `yaml:"arguments"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct {
	conv config.Converter
	// Getenv resolves ${VAR} references in string arguments. Defaults to
	// os.Getenv.
	Getenv func(string) string
}

// NewLoader creates a YAML loader that converts arguments with conv.
func NewLoader(conv config.Converter) *Loader {
	return &Loader{conv: conv, Getenv: os.Getenv}
}

// Load parses every .yaml and .yml file under paths, in lexical order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}

	model := &config.Model{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		m, err := l.parse(data, file)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}

	logger.Debug("YAML loading complete.", "files", len(files), "tags", len(model.Tags), "systems", len(model.Systems))
	return model, nil
}

func (l *Loader) parse(data []byte, source string) (*config.Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var root fileRoot
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", source, err)
	}

	model := &config.Model{}
	for _, t := range root.Tags {
		model.Tags = append(model.Tags, &config.Tag{
			Name:   t.Name,
			Before: t.Before,
			After:  t.After,
			Source: source,
		})
	}
	for _, s := range root.Systems {
		args, err := l.arguments(s.Arguments)
		if err != nil {
			return nil, fmt.Errorf("system %q in %s: %w", s.Name, source, err)
		}
		model.Systems = append(model.Systems, &config.System{
			Name:      s.Name,
			Handler:   s.Handler,
			Tags:      s.Tags,
			Before:    s.Before,
			After:     s.After,
			Arguments: args,
			Source:    source,
		})
	}
	return model, nil
}

func (l *Loader) arguments(raw map[string]any) (map[string]cty.Value, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(map[string]cty.Value, len(raw))
	for name, v := range raw {
		val, err := l.conv.ToCtyValue(l.expand(v))
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		out[name] = val
	}
	return out, nil
}

// expand substitutes environment references in every string of v.
func (l *Loader) expand(v any) any {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	switch tv := v.(type) {
	case string:
		return os.Expand(tv, getenv)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = l.expand(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, item := range tv {
			out[k] = l.expand(item)
		}
		return out
	default:
		return v
	}
}
