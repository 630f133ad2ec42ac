package bind

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type sampleInput struct {
	Message string            `phase:"message"`
	Repeat  int               `phase:"repeat,optional"`
	Labels  map[string]string `phase:"labels,optional"`
	Ignored string
	hidden  string `phase:"hidden"`
}

func TestFields(t *testing.T) {
	fields := Fields(reflect.TypeOf(&sampleInput{}))
	require.Len(t, fields, 3)
	assert.False(t, fields["message"].Optional)
	assert.True(t, fields["repeat"].Optional)
	assert.Equal(t, reflect.TypeOf(0), fields["repeat"].Type)

	assert.Empty(t, Fields(reflect.TypeOf(42)))
}

func TestConverter_Decode(t *testing.T) {
	ctx := context.Background()
	c := NewConverter()

	t.Run("binds and converts", func(t *testing.T) {
		var in sampleInput
		err := c.Decode(ctx, &in, map[string]cty.Value{
			"message": cty.StringVal("hello"),
			"repeat":  cty.StringVal("3"),
			"labels":  cty.ObjectVal(map[string]cty.Value{"a": cty.StringVal("b")}),
		})
		require.NoError(t, err)
		assert.Equal(t, "hello", in.Message)
		assert.Equal(t, 3, in.Repeat)
		assert.Equal(t, map[string]string{"a": "b"}, in.Labels)
		assert.Empty(t, in.hidden)
	})

	t.Run("optional fields may be omitted", func(t *testing.T) {
		var in sampleInput
		require.NoError(t, c.Decode(ctx, &in, map[string]cty.Value{"message": cty.StringVal("x")}))
		assert.Zero(t, in.Repeat)
	})

	t.Run("errors", func(t *testing.T) {
		testCases := []struct {
			name        string
			target      any
			args        map[string]cty.Value
			errContains string
		}{
			{name: "missing required", target: &sampleInput{}, args: nil, errContains: `missing required argument "message"`},
			{name: "unknown argument", target: &sampleInput{}, args: map[string]cty.Value{"message": cty.StringVal("x"), "nope": cty.True, "also": cty.True}, errContains: "unsupported arguments: also, nope"},
			{name: "bad conversion", target: &sampleInput{}, args: map[string]cty.Value{"message": cty.StringVal("x"), "repeat": cty.StringVal("many")}, errContains: "failed to decode argument 'repeat'"},
			{name: "not a pointer", target: sampleInput{}, errContains: "non-nil pointer"},
			{name: "nil pointer", target: (*sampleInput)(nil), errContains: "non-nil pointer"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				err := c.Decode(ctx, tc.target, tc.args)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			})
		}
	})
}

func TestConverter_ToCtyValue(t *testing.T) {
	c := NewConverter()

	val, err := c.ToCtyValue(map[string]any{
		"name":  "x",
		"count": 2,
		"tags":  []any{"a", true},
		"none":  nil,
	})
	require.NoError(t, err)
	assert.True(t, val.Type().IsObjectType())
	assert.Equal(t, cty.StringVal("x"), val.GetAttr("name"))
	assert.True(t, val.GetAttr("count").RawEquals(cty.NumberIntVal(2)))
	assert.Equal(t, 2, val.GetAttr("tags").LengthInt())
	assert.True(t, val.GetAttr("none").IsNull())

	empty, err := c.ToCtyValue(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, cty.EmptyObjectVal, empty)

	_, err = c.ToCtyValue(make(chan int))
	assert.Error(t, err)
}

func TestConverter_DecodeDynamic(t *testing.T) {
	var in struct {
		Value cty.Value `phase:"value"`
	}
	obj := cty.ObjectVal(map[string]cty.Value{"k": cty.True})
	require.NoError(t, NewConverter().Decode(context.Background(), &in, map[string]cty.Value{"value": obj}))
	assert.True(t, in.Value.RawEquals(obj))
	assert.True(t, IsDynamic(reflect.TypeOf(cty.Value{})))
	assert.False(t, IsDynamic(reflect.TypeOf("")))
}
