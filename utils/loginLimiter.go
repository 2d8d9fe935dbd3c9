package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campus/config"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed sign in attempts per key (client IP) inside a
// rolling window. Implementations must be safe for concurrent use.
type LoginLimiter interface {
	// Hit records a failed attempt and reports whether the key is now over the limit.
	Hit(ctx context.Context, key string) (bool, error)
	// Blocked reports whether the key is currently over the limit.
	Blocked(ctx context.Context, key string) (bool, error)
	// Reset clears the counter after a successful sign in.
	Reset(ctx context.Context, key string) error
}

type memoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string][]time.Time
}

// NewMemoryLimiter returns a process-local limiter.
func NewMemoryLimiter(limit int, window time.Duration) LoginLimiter {
	return &memoryLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string][]time.Time),
	}
}

func (m *memoryLimiter) prune(key string, now time.Time) []time.Time {
	kept := m.entries[key][:0]
	for _, t := range m.entries[key] {
		if now.Sub(t) < m.window {
			kept = append(kept, t)
		}
	}
	m.entries[key] = kept
	return kept
}

func (m *memoryLimiter) Hit(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	attempts := append(m.prune(key, now), now)
	m.entries[key] = attempts
	return len(attempts) >= m.limit, nil
}

func (m *memoryLimiter) Blocked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.prune(key, time.Now())) >= m.limit, nil
}

func (m *memoryLimiter) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

type redisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisLimiter returns a limiter backed by redis so the count is
// shared across instances.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) LoginLimiter {
	return &redisLimiter{client: client, limit: limit, window: window}
}

func (r *redisLimiter) key(key string) string {
	return fmt.Sprintf("login:attempts:%s", key)
}

func (r *redisLimiter) Hit(ctx context.Context, key string) (bool, error) {
	k := r.key(key)
	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, err
		}
	}
	return int(count) >= r.limit, nil
}

func (r *redisLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Get(ctx, r.key(key)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= r.limit, nil
}

func (r *redisLimiter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// NewLoginLimiter picks the redis limiter when REDIS_URL is configured,
// otherwise the in-memory limiter.
func NewLoginLimiter() (LoginLimiter, error) {
	limit := config.AppConfig.MaxLoginAttempts
	window := time.Duration(config.AppConfig.LockoutMinutes) * time.Minute

	if config.AppConfig.RedisURL == "" {
		return NewMemoryLimiter(limit, window), nil
	}

	opts, err := redis.ParseURL(config.AppConfig.RedisURL)
	if err != nil {
		return nil, err
	}
	return NewRedisLimiter(redis.NewClient(opts), limit, window), nil
}
