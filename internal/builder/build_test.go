package builder

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/phasegrid/internal/bind"
	"github.com/vk/phasegrid/internal/config"
	"github.com/vk/phasegrid/internal/frame"
	"github.com/vk/phasegrid/internal/registry"
	"github.com/vk/phasegrid/internal/schedule"
	"github.com/zclconf/go-cty/cty"
)

type echoInput struct {
	Text string `phase:"text,optional"`
}

func newTestRegistry() *registry.Registry {
	r := registry.New()
	r.Register("echo", registry.Handler(func(_ context.Context, f *frame.Frame, in *echoInput) error {
		_, err := fmt.Fprintf(f.Out, "%s;", in.Text)
		return err
	}))
	return r
}

func sys(name string, mutate ...func(*config.System)) *config.System {
	s := &config.System{
		Name:      name,
		Handler:   "echo",
		Arguments: map[string]cty.Value{"text": cty.StringVal(name)},
	}
	for _, m := range mutate {
		m(s)
	}
	return s
}

func build(t *testing.T, model *config.Model) (*Schedule, error) {
	t.Helper()
	return Build(context.Background(), model, newTestRegistry(), bind.NewConverter())
}

func TestBuild_DeclarationOrder(t *testing.T) {
	s, err := build(t, &config.Model{Systems: []*config.System{sys("d"), sys("a"), sys("b")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a", "b"}, s.Names())

	var out bytes.Buffer
	require.NoError(t, s.Run(context.Background(), frame.New(&out)))
	assert.Equal(t, "d;a;b;", out.String())
}

func TestBuild_TagsAndConstraints(t *testing.T) {
	model := &config.Model{
		Tags: []*config.Tag{
			{Name: "physics", After: []string{"input"}},
			{Name: "input"},
		},
		Systems: []*config.System{
			sys("integrate", func(s *config.System) { s.Tags = []string{"physics"} }),
			sys("forces", func(s *config.System) {
				s.Tags = []string{"physics"}
				s.Before = []string{"integrate"}
			}),
			sys("render", func(s *config.System) { s.After = []string{"physics"} }),
			sys("poll", func(s *config.System) { s.Tags = []string{"input"} }),
		},
	}

	s, err := build(t, model)
	require.NoError(t, err)
	assert.Equal(t, []string{"poll", "forces", "integrate", "render"}, s.Names())
	assert.Equal(t, schedule.StateBuilt, s.State())
}

func TestBuild_ForwardReferences(t *testing.T) {
	model := &config.Model{
		Systems: []*config.System{
			sys("a", func(s *config.System) { s.After = []string{"b"} }),
			sys("c", func(s *config.System) { s.Before = []string{"b"} }),
			sys("b"),
		},
	}
	s, err := build(t, model)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, s.Names())
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		model       *config.Model
		target      error
		errContains string
	}{
		{
			name:        "invalid model",
			model:       &config.Model{Systems: []*config.System{sys("a", func(s *config.System) { s.After = []string{"ghost"} })}},
			errContains: "pipeline validation failed",
		},
		{
			name:        "unknown handler",
			model:       &config.Model{Systems: []*config.System{sys("a", func(s *config.System) { s.Handler = "nope" })}},
			errContains: "registry validation failed",
		},
		{
			name: "cycle",
			model: &config.Model{Systems: []*config.System{
				sys("a", func(s *config.System) { s.After = []string{"b"} }),
				sys("b", func(s *config.System) { s.After = []string{"a"} }),
			}},
			target: schedule.ErrCycle,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := build(t, tc.model)
			require.Error(t, err)
			if tc.target != nil {
				assert.ErrorIs(t, err, tc.target)
			}
			if tc.errContains != "" {
				assert.Contains(t, err.Error(), tc.errContains)
			}
		})
	}
}
