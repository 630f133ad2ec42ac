package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a pipeline.
// Declaration order is preserved and is the insertion order of the schedule.
type Model struct {
	Tags    []*Tag
	Systems []*System
}

// Tag is the format-agnostic representation of a `tag` declaration.
type Tag struct {
	Name   string
	Before []string
	After  []string
	// Source is the file the tag was declared in, for error messages.
	Source string
}

// System is the format-agnostic representation of a `system` declaration:
// one runnable backed by a registered handler.
type System struct {
	Name      string
	Handler   string
	Tags      []string
	Before    []string
	After     []string
	Arguments map[string]cty.Value
	Source    string
}

// Merge appends the declarations of other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Tags = append(m.Tags, other.Tags...)
	m.Systems = append(m.Systems, other.Systems...)
}

// Empty reports whether the model declares nothing.
func (m *Model) Empty() bool {
	return m == nil || (len(m.Tags) == 0 && len(m.Systems) == 0)
}
