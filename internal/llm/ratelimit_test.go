package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Run("burst up to capacity", func(t *testing.T) {
		rl := newRateLimiter(600)
		defer rl.Close()
		ctx := context.Background()

		for i := 0; i < 600; i++ {
			require.NoError(t, rl.wait(ctx))
		}
		assert.False(t, rl.tryAcquire(), "bucket should be empty")

		// 600 rpm refills one token every 100ms.
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		start := time.Now()
		require.NoError(t, rl.wait(ctx))
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("context cancellation", func(t *testing.T) {
		rl := newRateLimiter(1)
		defer rl.Close()

		require.NoError(t, rl.wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := rl.wait(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("default rate", func(t *testing.T) {
		rl := newRateLimiter(0)
		defer rl.Close()
		assert.Equal(t, 60, rl.capacity)
	})
}
