// Package ratelimit provides the counter collaborator the secure route
// pipeline consumes. Counting is fixed-window per {class, caller key}; the
// Redis store shares windows across instances, the in-memory store backs
// tests and single-node development.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AkashAman27/cuddly-nest-blog/config"
	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/redis/go-redis/v9"
)

// Class describes one rate-limit class: at most Limit requests per Window
// from a single caller key.
type Class struct {
	Limit  int
	Window time.Duration
}

// ClassesFromConfig translates the loaded viper configuration into limiter
// classes.
func ClassesFromConfig() map[string]Class {
	classes := make(map[string]Class, len(config.AppConfig.RateLimit.Classes))
	for name, c := range config.AppConfig.RateLimit.Classes {
		classes[name] = Class{
			Limit:  c.Limit,
			Window: time.Duration(c.WindowSeconds) * time.Second,
		}
	}
	return classes
}

// ICounterClient defines the Redis commands the limiter needs. This
// abstraction decouples the limiter from a concrete Redis client, enabling
// easier testing.
type ICounterClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisLimiter counts in Redis with INCR plus a window-length expiry.
type RedisLimiter struct {
	client  ICounterClient
	classes map[string]Class
}

func NewRedisLimiter(client ICounterClient, classes map[string]Class) *RedisLimiter {
	return &RedisLimiter{client: client, classes: classes}
}

func (l *RedisLimiter) Allow(ctx context.Context, class, key string) (bool, error) {
	c, ok := l.classes[class]
	if !ok {
		logger.Log.WithField("class", class).Warn("Unknown rate-limit class, allowing request")
		return true, nil
	}

	counterKey := fmt.Sprintf("ratelimit:%s:%s", class, key)

	count, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate-limit counter: %w", err)
	}

	// EXPIRE NX on every hit: it only sets a TTL when the key has none, so a
	// counter can never be left immortal by a failure right after the first
	// INCR. A failed request here is denied rather than let through untimed.
	if err := l.client.ExpireNX(ctx, counterKey, c.Window).Err(); err != nil {
		return false, fmt.Errorf("failed to set rate-limit window: %w", err)
	}

	return count <= int64(c.Limit), nil
}

// MemoryLimiter keeps windows in process memory behind a mutex, so concurrent
// requests over the limit never race into extra allowances.
type MemoryLimiter struct {
	classes map[string]Class

	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func NewMemoryLimiter(classes map[string]Class) *MemoryLimiter {
	return &MemoryLimiter{
		classes: classes,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, class, key string) (bool, error) {
	c, ok := l.classes[class]
	if !ok {
		logger.Log.WithField("class", class).Warn("Unknown rate-limit class, allowing request")
		return true, nil
	}

	counterKey := class + ":" + key
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[counterKey]
	if w == nil || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(c.Window)}
		l.windows[counterKey] = w
	}
	w.count++

	return w.count <= c.Limit, nil
}
