package set_var

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/phasegrid/internal/frame"
	"github.com/zclconf/go-cty/cty"
)

func TestOnRunSetVar(t *testing.T) {
	ctx := context.Background()

	t.Run("sets a value", func(t *testing.T) {
		f := frame.New(nil)
		require.NoError(t, OnRunSetVar(ctx, f, &Input{Name: "x", Value: cty.StringVal("v")}))
		v, _ := f.Get("x")
		assert.Equal(t, cty.StringVal("v"), v)
	})

	t.Run("increments", func(t *testing.T) {
		f := frame.New(nil)
		require.NoError(t, OnRunSetVar(ctx, f, &Input{Name: "n", Increment: true}))
		require.NoError(t, OnRunSetVar(ctx, f, &Input{Name: "n", Increment: true, Value: cty.NumberIntVal(4)}))
		v, _ := f.Get("n")
		assert.True(t, v.RawEquals(cty.NumberIntVal(5)))
	})

	t.Run("rejects non numbers", func(t *testing.T) {
		f := frame.New(nil)
		f.Set("s", cty.StringVal("x"))
		assert.Error(t, OnRunSetVar(ctx, f, &Input{Name: "s", Increment: true}))
		assert.Error(t, OnRunSetVar(ctx, f, &Input{Name: "n", Increment: true, Value: cty.True}))
	})
}
