package ratelimit

import (
	"context"
	"time"
)

// RateLimiter counts attempts per key inside a sliding window.
type RateLimiter interface {
	// Allow records an attempt and reports whether it stays within limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Reset(ctx context.Context, key string) error
}
