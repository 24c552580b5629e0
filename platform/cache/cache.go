// Package cache provides the key/value cache used to memoize number lookups.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values under string keys with a TTL.
// Get reports a miss with ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Nop is a Cache that never stores anything. It is used when REDIS_URL is unset.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
