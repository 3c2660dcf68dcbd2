package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, "login")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")

	require.NoError(t, limiter.Reset(ctx, "10.0.0.1"))
	allowed, err = limiter.Allow(ctx, "10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryRateLimiter_SlidingWindow(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow(ctx, "k", 3, time.Minute)
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(ctx, "other", 3, time.Minute)
	assert.True(t, allowed, "keys are independent")

	now = now.Add(2 * time.Minute)
	allowed, _ = limiter.Allow(ctx, "k", 3, time.Minute)
	assert.True(t, allowed, "old attempts fall out of the window")

	allowed, err := limiter.Allow(ctx, "k", 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "zero limit disables limiting")
}
