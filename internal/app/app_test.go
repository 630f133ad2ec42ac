package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/phasegrid/internal/schedule"
	"github.com/vk/phasegrid/internal/testutil"
)

var pipelineFiles = map[string]string{
	"pipeline.hcl": `
tag "update" {}

system "count" {
  handler = "set_var"
  tags    = ["update"]
  arguments {
    name      = "ticks"
    increment = true
  }
}

system "report" {
  handler = "print"
  after   = ["update"]
  arguments {
    message = "tick"
    vars    = ["ticks"]
  }
}
`,
	"setup.yaml": `
systems:
  - name: setup
    handler: set_var
    before: [update]
    arguments:
      name: label
      value: hello
`,
}

func TestApp_Run(t *testing.T) {
	t.Run("runs the configured number of frames", func(t *testing.T) {
		a, out, logs, err := SetupAppTest(t, pipelineFiles, Config{Frames: 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"setup", "count", "report"}, a.Schedule().Names())

		require.NoError(t, a.Run(context.Background()))
		assert.Equal(t, uint64(3), a.Frames())
		assert.Equal(t, "[0] tick ticks=1\n[1] tick ticks=2\n[2] tick ticks=3\n", out.String())
		assert.Contains(t, logs.String(), "Frame loop finished.")
	})

	t.Run("paces frames on an interval", func(t *testing.T) {
		a, _, _, err := SetupAppTest(t, pipelineFiles, Config{Frames: 3, Interval: 10 * time.Millisecond})
		require.NoError(t, err)

		start := time.Now()
		require.NoError(t, a.Run(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("stops cleanly when cancelled", func(t *testing.T) {
		a, _, logs, err := SetupAppTest(t, pipelineFiles, Config{Interval: 5 * time.Millisecond})
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
		defer cancel()
		require.NoError(t, a.Run(ctx))
		assert.Positive(t, a.Frames())
		assert.Contains(t, logs.String(), "cancelled")
	})

	t.Run("a failing system aborts the loop", func(t *testing.T) {
		files := map[string]string{"p.hcl": `
system "nap" {
  handler = "sleep"
  arguments {
    duration = "forever"
  }
}
`}
		a, _, _, err := SetupAppTest(t, files, Config{Frames: 2})
		require.NoError(t, err)

		err = a.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "frame 0 failed")
		assert.Contains(t, err.Error(), "invalid duration")
		assert.Equal(t, uint64(0), a.Frames())
	})
}

func TestApp_RunWithModules(t *testing.T) {
	files := map[string]string{
		"tags.hcl": `
tag "physics" {}
tag "render" {
  after = ["physics"]
}
`,
		"systems.yaml": `
systems:
  - name: draw
    handler: record
    tags: [render]
    arguments:
      label: draw
  - name: integrate
    handler: record
    tags: [physics]
    arguments:
      label: integrate
  - name: forces
    handler: record
    tags: [physics]
    before: [integrate]
    arguments:
      label: forces
  - name: idle
    handler: noop
`,
	}

	t.Run("every frame follows the schedule", func(t *testing.T) {
		rec := &testutil.RecorderModule{}
		a, _, _, err := SetupAppTest(t, files, Config{Frames: 2}, rec, testutil.NoOpModule{})
		require.NoError(t, err)
		require.NoError(t, a.Run(context.Background()))

		for frame := uint64(0); frame < 2; frame++ {
			assert.Equal(t, []string{"forces", "integrate", "draw"}, rec.Labels(frame))
		}
	})

	t.Run("a failing runnable is reported by name", func(t *testing.T) {
		failing := map[string]string{"p.hcl": `
system "ok" {
  handler = "record"
  arguments { label = "ok" }
}
system "bad" {
  handler = "record"
  after   = ["ok"]
  arguments {
    label = "bad"
    fail  = "boom"
  }
}
`}
		rec := &testutil.RecorderModule{}
		a, _, _, err := SetupAppTest(t, failing, Config{Frames: 3}, rec)
		require.NoError(t, err)

		err = a.Run(context.Background())
		var runErr *schedule.RunError
		require.ErrorAs(t, err, &runErr)
		assert.Equal(t, "bad", runErr.Runnable)
		assert.EqualError(t, runErr.Err, "boom")
		assert.Equal(t, []string{"ok"}, rec.Labels(0))
		assert.Empty(t, rec.Labels(1))
	})
}

func TestNewApp_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		files       map[string]string
		errContains string
	}{
		{
			name:        "unknown handler",
			files:       map[string]string{"p.hcl": `system "x" { handler = "ghost" }`},
			errContains: "unknown handler 'ghost'",
		},
		{
			name:        "parse error",
			files:       map[string]string{"p.yaml": "systems: ["},
			errContains: "failed to load pipeline",
		},
		{
			name: "cycle",
			files: map[string]string{"p.hcl": `
system "a" {
  handler = "print"
  after   = ["b"]
  arguments { message = "a" }
}
system "b" {
  handler = "print"
  after   = ["a"]
  arguments { message = "b" }
}
`},
			errContains: "graph contains a cycle",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, _, _, err := SetupAppTest(t, tc.files, Config{})
			require.Error(t, err)
			assert.Nil(t, a)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestApp_PlanAndGraph(t *testing.T) {
	a, _, _, err := SetupAppTest(t, pipelineFiles, Config{})
	require.NoError(t, err)

	var plan bytes.Buffer
	require.NoError(t, a.Plan(&plan))
	assert.Equal(t, "3 systems\n  1. setup\n  2. count\n  3. report\n", plan.String())

	var graph bytes.Buffer
	require.NoError(t, a.Graph(&graph, true))
	assert.Equal(t, `update-before -> [count]
update-after -> [report]
count -> [update-after]
report -> []
setup -> [update-before]
`, graph.String())
}

func TestApp_HealthcheckRouter(t *testing.T) {
	a, _, _, err := SetupAppTest(t, pipelineFiles, Config{Frames: 1})
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))
	router := a.router()

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK\n", w.Body.String())
	})

	t.Run("schedule", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/schedule", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp scheduleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"setup", "count", "report"}, resp.Order)
		assert.Equal(t, "built", resp.State)
		assert.Equal(t, uint64(1), resp.Frames)
	})
}
