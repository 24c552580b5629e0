package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "phone_tools_backend/internal/http"
	"phone_tools_backend/internal/http/router"
	"phone_tools_backend/internal/lookup"
	"phone_tools_backend/internal/scheduler"
	"phone_tools_backend/internal/tools"
	"phone_tools_backend/platform/cache"
	"phone_tools_backend/platform/config"
	"phone_tools_backend/platform/logger"
	"phone_tools_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr,
		"defaultRegion", cfg.DefaultRegion, "defaultLang", cfg.DefaultLang)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var (
		redisClient *redis.Client
		lookupCache cache.Cache = cache.Nop{}
		health      apphttp.HealthChecker
	)
	if cfg.IsRedisEnabled() {
		redisClient = connectRedis(ctx, cfg, log)
		defer func() { _ = redisClient.Close() }()
		lookupCache = cache.NewRedisCache(redisClient, "phone:")
		health = cache.NewPinger(redisClient)
	} else {
		log.Warn("REDIS_URL not configured; lookup cache and batch jobs disabled")
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Modules (Composition Root)
	// ========================================================================

	lookupModule := lookup.NewModule(cfg, lookupCache, cfg.GetLookupCacheTTL(), val, log)

	if redisClient != nil {
		batchClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize batch job client", "error", err)
			panic("failed to initialize batch job client: " + err.Error())
		}
		defer func() { _ = batchClient.Close() }()
		lookupModule.Service().SetBatchJobs(batchClient, scheduler.NewJobStore(redisClient, cfg.GetBatchResultTTL()))
	}

	registry, err := tools.NewPhoneRegistry(lookupModule.Service(), lookupModule.Service(), log)
	if err != nil {
		log.Error("failed to register phone tools", "error", err)
		panic("failed to register phone tools: " + err.Error())
	}
	toolsModule := tools.NewModule(registry)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: health,
		Modules: []apphttp.Module{
			lookupModule,
			toolsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	client, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to configure redis", "error", err)
		panic("failed to configure redis: " + err.Error())
	}

	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")
	return client
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
