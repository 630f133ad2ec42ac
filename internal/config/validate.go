package config

import (
	"fmt"
	"strings"

	"github.com/vk/phasegrid/internal/ident"
)

// Validate checks names, uniqueness and references. Tags and systems share
// one namespace. All problems are reported together.
func (m *Model) Validate() error {
	var errs []string
	kinds := make(map[string]string)

	declare := func(kind, name, source string) {
		if _, err := ident.Parse(name); err != nil {
			errs = append(errs, fmt.Sprintf("%s %q (%s): %v", kind, name, source, err))
			return
		}
		if prev, ok := kinds[name]; ok {
			errs = append(errs, fmt.Sprintf("%s %q (%s): name already used by a %s", kind, name, source, prev))
			return
		}
		kinds[name] = kind
	}

	for _, t := range m.Tags {
		declare("tag", t.Name, t.Source)
	}
	for _, s := range m.Systems {
		declare("system", s.Name, s.Source)
		if s.Handler == "" {
			errs = append(errs, fmt.Sprintf("system %q (%s): handler is required", s.Name, s.Source))
		}
	}

	checkRefs := func(kind, name, field string, refs []string) {
		for _, ref := range refs {
			if ref == name {
				errs = append(errs, fmt.Sprintf("%s %q: %s references itself", kind, name, field))
				continue
			}
			if _, ok := kinds[ref]; !ok {
				errs = append(errs, fmt.Sprintf("%s %q: %s references unknown %q", kind, name, field, ref))
			}
		}
	}

	for _, t := range m.Tags {
		checkRefs("tag", t.Name, "before", t.Before)
		checkRefs("tag", t.Name, "after", t.After)
	}
	for _, s := range m.Systems {
		checkRefs("system", s.Name, "before", s.Before)
		checkRefs("system", s.Name, "after", s.After)
		for _, tag := range s.Tags {
			if kinds[tag] != "tag" {
				errs = append(errs, fmt.Sprintf("system %q: tags references %q which is not a tag", s.Name, tag))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("pipeline validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
