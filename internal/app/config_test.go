package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	valid := Config{Paths: []string{"pipeline"}}

	testCases := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{name: "minimal", mutate: func(*Config) {}},
		{name: "cron with seconds", mutate: func(c *Config) { c.Cron = "*/5 * * * * *" }},
		{name: "cron descriptor", mutate: func(c *Config) { c.Cron = "@every 1s" }},
		{name: "no paths", mutate: func(c *Config) { c.Paths = nil }, errContains: "pipeline path is required"},
		{name: "negative frames", mutate: func(c *Config) { c.Frames = -1 }, errContains: "frames must not be negative"},
		{name: "negative interval", mutate: func(c *Config) { c.Interval = -time.Second }, errContains: "interval must not be negative"},
		{name: "cron and interval", mutate: func(c *Config) { c.Cron = "@every 1s"; c.Interval = time.Second }, errContains: "mutually exclusive"},
		{name: "bad cron", mutate: func(c *Config) { c.Cron = "every tuesday" }, errContains: "invalid cron expression"},
		{name: "bad port", mutate: func(c *Config) { c.HealthcheckPort = 70000 }, errContains: "invalid healthcheck port"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, errContains: "invalid log format"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, errContains: "invalid log level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			got, err := NewConfig(cfg)
			if tc.errContains == "" {
				require.NoError(t, err)
				assert.Equal(t, cfg, *got)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}
