package bind

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/phasegrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TagName is the struct tag read by the converter.
const TagName = "phase"

var valueType = reflect.TypeOf(cty.Value{})

// IsDynamic reports whether fields of type t accept any cty value as is.
func IsDynamic(t reflect.Type) bool {
	return t == valueType
}

// Field describes one bindable field of an input struct.
type Field struct {
	Name     string
	Optional bool
	Index    int
	Type     reflect.Type
}

// Fields lists the bindable fields of the struct type t, keyed by argument
// name.
func Fields(t reflect.Type) map[string]Field {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	out := make(map[string]Field)
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get(TagName)
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		field := Field{Name: parts[0], Index: i, Type: f.Type}
		for _, opt := range parts[1:] {
			if opt == "optional" {
				field.Optional = true
			}
		}
		out[field.Name] = field
	}
	return out
}

// Converter is the cty implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Decode populates the struct pointed to by target from args.
func (c *Converter) Decode(ctx context.Context, target any, args map[string]cty.Value) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting argument decoding.", "args", len(args))

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() || structVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a non-nil pointer to a struct, got %T", target)
	}
	structVal = structVal.Elem()
	fields := Fields(structVal.Type())

	var unknown []string
	for name := range args {
		if _, ok := fields[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unsupported arguments: %s", strings.Join(unknown, ", "))
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := fields[name]
		val, provided := args[name]
		if !provided || val.IsNull() {
			if !field.Optional {
				return fmt.Errorf("missing required argument %q", name)
			}
			continue
		}
		targetPtr := structVal.Field(field.Index).Addr().Interface()
		if err := c.decode(ctx, val, targetPtr); err != nil {
			return fmt.Errorf("failed to decode argument '%s': %w", name, err)
		}
	}

	logger.Debug("Finished argument decoding successfully.")
	return nil
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}
	if IsDynamic(valPtr.Elem().Type()) {
		valPtr.Elem().Set(reflect.ValueOf(val))
		return nil
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
// Untyped values such as those produced by YAML decoding (map[string]any,
// []any) are converted structurally.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case map[string]any:
		if len(tv) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(tv))
		for k, item := range tv {
			val, err := c.ToCtyValue(item)
			if err != nil {
				return cty.NilVal, fmt.Errorf("key %q: %w", k, err)
			}
			attrs[k] = val
		}
		return cty.ObjectVal(attrs), nil
	case []any:
		if len(tv) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(tv))
		for i, item := range tv {
			val, err := c.ToCtyValue(item)
			if err != nil {
				return cty.NilVal, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = val
		}
		return cty.TupleVal(elems), nil
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}
