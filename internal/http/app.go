// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"phone_tools_backend/platform/config"
	"phone_tools_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.AuthConfig
	config.RateLimitConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP, auth and rate limit settings).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is pinged by /api/ready. Nil when Redis is not configured.
	Health HealthChecker
	// Modules contains all HTTP-facing modules.
	Modules []Module
}
