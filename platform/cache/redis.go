package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"phone_tools_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores values in Redis under a common key prefix.
type RedisCache struct {
	client redis.Cmdable
	prefix string
}

// NewRedisCache wraps an existing client. Keys are stored as prefix+key.
func NewRedisCache(client redis.Cmdable, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get returns the cached value for key.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key. A non-positive ttl stores without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// NewRedisClient parses a redis:// or rediss:// URL. With tlsInsecure set,
// certificate verification is skipped, and TLS is enabled even for redis:// URLs.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if cfg.GetRedisTLSInsecure() {
			clone.InsecureSkipVerify = true
		}
		opt.TLSConfig = clone
	} else if cfg.GetRedisTLSInsecure() {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return redis.NewClient(opt), nil
}

// Pinger adapts a Redis client to the readiness check interface.
type Pinger struct {
	client redis.Cmdable
}

// NewPinger creates a Pinger.
func NewPinger(client redis.Cmdable) *Pinger {
	return &Pinger{client: client}
}

// Ping checks that Redis answers.
func (p *Pinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
