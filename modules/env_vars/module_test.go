package env_vars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/phasegrid/internal/frame"
	"github.com/zclconf/go-cty/cty"
)

func TestOnRunEnvVars(t *testing.T) {
	orig := environ
	environ = func() []string { return []string{"A=1", "B=two=2", "broken"} }
	t.Cleanup(func() { environ = orig })

	t.Run("copies everything", func(t *testing.T) {
		f := frame.New(nil)
		require.NoError(t, OnRunEnvVars(context.Background(), f, &Input{Prefix: "env."}))
		assert.Equal(t, []string{"env.A", "env.B"}, f.VarNames())
		v, _ := f.Get("env.B")
		assert.Equal(t, cty.StringVal("two=2"), v)
	})

	t.Run("copies selected names", func(t *testing.T) {
		f := frame.New(nil)
		require.NoError(t, OnRunEnvVars(context.Background(), f, &Input{Names: []string{"A", "MISSING"}}))
		assert.Equal(t, []string{"A", "MISSING"}, f.VarNames())
		v, _ := f.Get("MISSING")
		assert.Equal(t, cty.StringVal(""), v)
	})
}
