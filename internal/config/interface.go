package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific pipeline loader.
type Loader interface {
	// Load reads every supported file under the given paths and translates
	// them into the format-agnostic model. Paths that do not exist are
	// skipped.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Converter binds evaluated arguments onto the Go input structs of handlers.
type Converter interface {
	// Decode populates target, a non-nil pointer to a struct, from args.
	Decode(ctx context.Context, target any, args map[string]cty.Value) error

	// ToCtyValue converts a native Go value into its cty.Value.
	ToCtyValue(v any) (cty.Value, error)
}
