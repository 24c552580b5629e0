// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// PhoneConfig provides the process-wide lookup defaults.
type PhoneConfig interface {
	GetDefaultRegion() string
	GetDefaultLang() string
	GetBatchMaxItems() int
}

// RedisConfig provides the shared Redis connection settings.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	IsRedisEnabled() bool
}

// CacheConfig provides settings for the lookup cache.
type CacheConfig interface {
	RedisConfig
	GetLookupCacheTTL() time.Duration
}

// SchedulerConfig provides settings for the batch job queue and worker.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetBatchResultTTL() time.Duration
	GetBatchStaleAfter() time.Duration
}

// AuthConfig provides the optional bearer token secret for tool endpoints.
type AuthConfig interface {
	GetToolsJWTSecret() string
	IsAuthEnabled() bool
}

// RateLimitConfig provides per-IP rate limit settings.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	DefaultRegion    string
	DefaultLang      string
	BatchMaxItems    int
	RedisURL         string
	RedisTLSInsecure bool
	LookupCacheTTL   time.Duration
	AsynqQueueName   string
	AsynqConcurrency int
	BatchResultTTL   time.Duration
	BatchStaleAfter  time.Duration
	ToolsJWTSecret   string
	RateLimitRPS     float64
	RateLimitBurst   int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// PhoneConfig implementation
func (c *Config) GetDefaultRegion() string { return c.DefaultRegion }
func (c *Config) GetDefaultLang() string   { return c.DefaultLang }
func (c *Config) GetBatchMaxItems() int    { return c.BatchMaxItems }

// RedisConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) IsRedisEnabled() bool      { return c.RedisURL != "" }

// CacheConfig implementation
func (c *Config) GetLookupCacheTTL() time.Duration { return c.LookupCacheTTL }

// SchedulerConfig implementation
func (c *Config) GetAsynqQueueName() string         { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int          { return c.AsynqConcurrency }
func (c *Config) GetBatchResultTTL() time.Duration  { return c.BatchResultTTL }
func (c *Config) GetBatchStaleAfter() time.Duration { return c.BatchStaleAfter }

// AuthConfig implementation
func (c *Config) GetToolsJWTSecret() string { return c.ToolsJWTSecret }
func (c *Config) IsAuthEnabled() bool       { return c.ToolsJWTSecret != "" }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// Load reads configuration from environment variables (and a .env file when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		DefaultRegion:    strings.ToUpper(strings.TrimSpace(getEnv("PHONE_DEFAULT_REGION", "CN"))),
		DefaultLang:      strings.TrimSpace(getEnv("PHONE_DEFAULT_LANG", "en")),
		BatchMaxItems:    mustInt(getEnv("BATCH_MAX_ITEMS", "1000"), 1000),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		LookupCacheTTL:   mustDuration(getEnv("LOOKUP_CACHE_TTL", "24h")),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "phone"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10"), 10),
		BatchResultTTL:   mustDuration(getEnv("BATCH_RESULT_TTL", "24h")),
		BatchStaleAfter:  mustDuration(getEnv("BATCH_STALE_AFTER", "15m")),
		ToolsJWTSecret:   getEnv("TOOLS_JWT_SECRET", ""),
		RateLimitRPS:     mustFloat(getEnv("RATE_LIMIT_RPS", "20"), 20),
		RateLimitBurst:   mustInt(getEnv("RATE_LIMIT_BURST", "40"), 40),
	}

	if phonenumbers.GetCountryCodeForRegion(cfg.DefaultRegion) == 0 {
		return nil, fmt.Errorf("PHONE_DEFAULT_REGION %q is not a supported region", cfg.DefaultRegion)
	}
	if _, err := language.Parse(cfg.DefaultLang); err != nil {
		return nil, fmt.Errorf("PHONE_DEFAULT_LANG %q is not a valid language tag: %w", cfg.DefaultLang, err)
	}
	if cfg.BatchMaxItems < 1 {
		return nil, fmt.Errorf("BATCH_MAX_ITEMS must be positive")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string, fallback int) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return result
}

func mustFloat(value string, fallback float64) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
