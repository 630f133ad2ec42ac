package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/phasegrid/internal/registry"
	"github.com/vk/phasegrid/internal/testutil"
)

// SetupAppTest writes files into a temporary directory and creates an app
// reading from it. It returns the app (nil when creation failed), the buffers
// capturing system output and logs, and the creation error.
func SetupAppTest(t *testing.T, files map[string]string, cfg Config, modules ...registry.Module) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer, error) {
	t.Helper()

	cfg.Paths = []string{testutil.WriteFiles(t, files)}
	cfg.LogLevel = "debug"
	cfg.NoColor = true
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	outBuffer, logBuffer := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	testApp, err := NewApp(outBuffer, logBuffer, validated, modules...)

	t.Cleanup(func() {
		if os.Getenv("PHASEGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer, err
}
