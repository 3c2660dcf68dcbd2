package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter is a single-process sliding window used when redis is
// not configured.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string][]time.Time
	now     func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		entries: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-window)

	kept := l.entries[key][:0]
	for _, at := range l.entries[key] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	allowed := len(kept) < limit
	l.entries[key] = append(kept, now)
	return allowed, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
	return nil
}
