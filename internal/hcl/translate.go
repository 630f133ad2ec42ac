package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/phasegrid/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// translateTag converts the HCL-specific tag schema into the agnostic model.
func translateTag(t *tagBlock, source string) *config.Tag {
	return &config.Tag{
		Name:   t.Name,
		Before: t.Before,
		After:  t.After,
		Source: source,
	}
}

// translateSystem converts the HCL-specific system schema into the agnostic
// model, evaluating every argument.
func translateSystem(s *systemBlock, source string, evalCtx *hcl.EvalContext) (*config.System, error) {
	sys := &config.System{
		Name:    s.Name,
		Handler: s.Handler,
		Tags:    s.Tags,
		Before:  s.Before,
		After:   s.After,
		Source:  source,
	}
	if s.Arguments == nil || s.Arguments.Body == nil {
		return sys, nil
	}

	attrs, diags := s.Arguments.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("system %q in %s: invalid arguments block: %w", s.Name, source, diags)
	}
	sys.Arguments = make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("system %q in %s: argument %q: %w", s.Name, source, name, diags)
		}
		sys.Arguments[name] = val
	}
	return sys, nil
}
