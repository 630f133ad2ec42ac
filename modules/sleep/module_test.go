package sleep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnRunSleep(t *testing.T) {
	t.Run("waits", func(t *testing.T) {
		start := time.Now()
		require.NoError(t, OnRunSleep(context.Background(), nil, &Input{Duration: "15ms"}))
		assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := OnRunSleep(ctx, nil, &Input{Duration: "1h"})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects bad durations", func(t *testing.T) {
		err := OnRunSleep(context.Background(), nil, &Input{Duration: "soon"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid duration")
	})

	t.Run("zero returns immediately", func(t *testing.T) {
		assert.NoError(t, OnRunSleep(context.Background(), nil, &Input{Duration: "0s"}))
	})
}
