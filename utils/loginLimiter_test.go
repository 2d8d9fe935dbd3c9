package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_BlocksAfterLimit(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		over, err := limiter.Hit(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.False(t, over)
	}

	over, err := limiter.Hit(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, over)

	blocked, err := limiter.Blocked(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter(2, time.Minute)
	ctx := context.Background()

	limiter.Hit(ctx, "1.2.3.4")
	limiter.Hit(ctx, "1.2.3.4")

	blocked, err := limiter.Blocked(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestMemoryLimiter_ResetClears(t *testing.T) {
	limiter := NewMemoryLimiter(2, time.Minute)
	ctx := context.Background()

	limiter.Hit(ctx, "1.2.3.4")
	limiter.Hit(ctx, "1.2.3.4")

	require.NoError(t, limiter.Reset(ctx, "1.2.3.4"))

	blocked, err := limiter.Blocked(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestMemoryLimiter_WindowExpires(t *testing.T) {
	limiter := NewMemoryLimiter(2, 50*time.Millisecond)
	ctx := context.Background()

	limiter.Hit(ctx, "1.2.3.4")
	limiter.Hit(ctx, "1.2.3.4")

	blocked, _ := limiter.Blocked(ctx, "1.2.3.4")
	assert.True(t, blocked)

	time.Sleep(60 * time.Millisecond)

	blocked, err := limiter.Blocked(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, blocked)
}
