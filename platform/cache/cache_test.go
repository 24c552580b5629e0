package cache

import (
	"context"
	"testing"
	"time"

	"phone_tools_backend/platform/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, "test:"), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(value) != "v" {
		t.Fatalf("expected hit with v, got %q ok=%v err=%v", value, ok, err)
	}
	if !mr.Exists("test:k") {
		t.Fatal("expected key to be stored under prefix")
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestRedisCacheReportsBackendErrors(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	if _, _, err := c.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error from closed backend")
	}
}

func TestNopNeverHits(t *testing.T) {
	var c Cache = Nop{}
	_ = c.Set(context.Background(), "k", []byte("v"), time.Minute)
	if _, ok, err := c.Get(context.Background(), "k"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	if _, err := NewRedisClient(&config.Config{}); err == nil {
		t.Fatal("expected missing url to fail")
	}

	client, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr() + "/0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if err := NewPinger(client).Ping(context.Background()); err != nil {
		t.Fatalf("expected ping to succeed, got %v", err)
	}

	insecure, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr(), RedisTLSInsecure: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer insecure.Close()
	if insecure.Options().TLSConfig == nil || !insecure.Options().TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config")
	}
}
