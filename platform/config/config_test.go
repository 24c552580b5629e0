package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PHONE_DEFAULT_REGION", "CN")
	t.Setenv("PHONE_DEFAULT_LANG", "en")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}
	if cfg.GetDefaultRegion() != "CN" {
		t.Fatalf("expected default region CN, got %q", cfg.GetDefaultRegion())
	}
	if cfg.GetDefaultLang() != "en" {
		t.Fatalf("expected default lang en, got %q", cfg.GetDefaultLang())
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatal("expected wildcard CORS origin to enable allow-all")
	}
	if cfg.IsRedisEnabled() {
		t.Fatal("expected redis to be disabled without REDIS_URL")
	}
	if cfg.IsAuthEnabled() {
		t.Fatal("expected auth to be disabled without TOOLS_JWT_SECRET")
	}
	if cfg.GetLookupCacheTTL() != 24*time.Hour {
		t.Fatalf("expected 24h cache TTL, got %s", cfg.GetLookupCacheTTL())
	}
	if cfg.GetBatchMaxItems() != 1000 {
		t.Fatalf("expected 1000 batch items, got %d", cfg.GetBatchMaxItems())
	}
}

func TestLoadNormalizesRegionCase(t *testing.T) {
	t.Setenv("PHONE_DEFAULT_REGION", " us ")
	t.Setenv("PHONE_DEFAULT_LANG", "zh_TW")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultRegion != "US" {
		t.Fatalf("expected US, got %q", cfg.DefaultRegion)
	}
}

func TestLoadRejectsUnsupportedRegion(t *testing.T) {
	t.Setenv("PHONE_DEFAULT_REGION", "XX")

	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported region to fail")
	}
}

func TestLoadRejectsInvalidLanguage(t *testing.T) {
	t.Setenv("PHONE_DEFAULT_REGION", "CN")
	t.Setenv("PHONE_DEFAULT_LANG", "not a tag!")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid language tag to fail")
	}
}

func TestLoadRejectsWildcardWithCredentials(t *testing.T) {
	t.Setenv("PHONE_DEFAULT_REGION", "CN")
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected wildcard CORS with credentials to fail")
	}
}

func TestLoadParsesNumericSettings(t *testing.T) {
	t.Setenv("PHONE_DEFAULT_REGION", "CN")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "oops")
	t.Setenv("ASYNQ_CONCURRENCY", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsRedisEnabled() {
		t.Fatal("expected redis to be enabled")
	}
	if cfg.GetRateLimitRPS() != 2.5 {
		t.Fatalf("expected 2.5 rps, got %v", cfg.GetRateLimitRPS())
	}
	if cfg.GetRateLimitBurst() != 40 {
		t.Fatalf("expected fallback burst 40, got %d", cfg.GetRateLimitBurst())
	}
	if cfg.GetAsynqConcurrency() != 3 {
		t.Fatalf("expected concurrency 3, got %d", cfg.GetAsynqConcurrency())
	}
}
