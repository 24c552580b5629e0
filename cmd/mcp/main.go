// Command mcp serves the identify and extract phone tools over the Model
// Context Protocol on stdin/stdout.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"phone_tools_backend/internal/lookup/service"
	"phone_tools_backend/internal/tools"
	"phone_tools_backend/platform/cache"
	"phone_tools_backend/platform/config"
	"phone_tools_backend/platform/logger"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// stdout carries protocol frames
	log := logger.NewWithWriter(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var lookupCache cache.Cache = cache.Nop{}
	if cfg.IsRedisEnabled() {
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("failed to configure redis", "error", err)
			panic("failed to configure redis: " + err.Error())
		}
		defer func() { _ = client.Close() }()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable; lookups will not be cached", "error", err)
		} else {
			lookupCache = cache.NewRedisCache(client, "phone:")
		}
	}

	svc := service.New(cfg, lookupCache, cfg.GetLookupCacheTTL(), log)
	registry, err := tools.NewPhoneRegistry(svc, svc, log)
	if err != nil {
		log.Error("failed to register phone tools", "error", err)
		panic("failed to register phone tools: " + err.Error())
	}
	server, err := tools.NewMCPServer(registry, version)
	if err != nil {
		log.Error("failed to build mcp server", "error", err)
		panic("failed to build mcp server: " + err.Error())
	}

	log.Info("mcp server starting", "transport", "stdio", "version", version)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
