package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/phasegrid/internal/testutil"
)

const pipeline = `
system "hello" {
  handler = "print"
  arguments {
    message = "hello"
  }
}

system "bye" {
  handler = "print"
  after   = ["hello"]
  arguments {
    message = "bye"
  }
}
`

func writePipeline(t *testing.T) string {
	t.Helper()
	return testutil.WriteFiles(t, map[string]string{"main.hcl": pipeline})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, &out, &errOut)
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T: %v", err, err)
	return exitErr.Code
}

func TestExecute_Commands(t *testing.T) {
	dir := writePipeline(t)

	t.Run("plan", func(t *testing.T) {
		out, err := execute(t, "plan", "--no-color", dir)
		require.NoError(t, err)
		assert.Equal(t, "2 systems\n  1. hello\n  2. bye\n", out)
	})

	t.Run("run", func(t *testing.T) {
		out, err := execute(t, "run", "--frames", "2", dir)
		require.NoError(t, err)
		assert.Equal(t, "[0] hello\n[0] bye\n[1] hello\n[1] bye\n", out)
	})

	t.Run("graph", func(t *testing.T) {
		out, err := execute(t, "graph", "--reduce", dir)
		require.NoError(t, err)
		assert.Equal(t, "hello -> [bye]\nbye -> []\n", out)
	})
}

func TestExecute_ConfigSources(t *testing.T) {
	dir := writePipeline(t)

	t.Run("config file supplies paths and flags", func(t *testing.T) {
		cfgFile := filepath.Join(t.TempDir(), "phasegrid.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("paths: ["+dir+"]\nframes: 3\n"), 0o644))

		out, err := execute(t, "run", "--config", cfgFile)
		require.NoError(t, err)
		assert.Equal(t, 6, bytes.Count([]byte(out), []byte("\n")))
	})

	t.Run("environment variables are read", func(t *testing.T) {
		t.Setenv("PHASEGRID_LOG_LEVEL", "loud")
		_, err := execute(t, "plan", dir)
		require.Error(t, err)
		assert.Equal(t, 2, exitCode(t, err))
		assert.Contains(t, err.Error(), "invalid log-level")
	})

	t.Run("flags win over the environment", func(t *testing.T) {
		t.Setenv("PHASEGRID_FRAMES", "5")
		out, err := execute(t, "run", "--frames", "1", dir)
		require.NoError(t, err)
		assert.Equal(t, "[0] hello\n[0] bye\n", out)
	})
}

func TestExecute_Errors(t *testing.T) {
	dir := writePipeline(t)

	testCases := []struct {
		name        string
		args        []string
		code        int
		errContains string
	}{
		{name: "missing path", args: []string{"plan"}, code: 2, errContains: "no pipeline path given"},
		{name: "unknown flag", args: []string{"plan", "--bogus", dir}, code: 2, errContains: "unknown flag"},
		{name: "bad log format", args: []string{"plan", "--log-format", "xml", dir}, code: 2, errContains: "invalid log-format"},
		{name: "bad cron", args: []string{"run", "--cron", "never", dir}, code: 2, errContains: "invalid cron expression"},
		{name: "missing config file", args: []string{"plan", "--config", filepath.Join(dir, "nope.yaml"), dir}, code: 2, errContains: "cannot read config file"},
		{name: "broken pipeline", args: []string{"plan", writeBroken(t)}, code: 1, errContains: "unknown handler"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, tc.code, exitCode(t, err))
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func writeBroken(t *testing.T) string {
	t.Helper()
	return testutil.WriteFiles(t, map[string]string{"main.hcl": `system "x" { handler = "ghost" }`})
}
