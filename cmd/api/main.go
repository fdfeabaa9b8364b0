package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/callguard/spam-checker/internal/config"
	httpHandler "github.com/callguard/spam-checker/internal/platform/http"
	"github.com/callguard/spam-checker/internal/platform/http/middleware"
	"github.com/callguard/spam-checker/internal/platform/mcp"
	"github.com/callguard/spam-checker/internal/platform/storage/memory"
	redisStore "github.com/callguard/spam-checker/internal/platform/storage/redis"
	"github.com/callguard/spam-checker/internal/platform/storage/scylla"
	"github.com/callguard/spam-checker/internal/platform/twilio"
	"github.com/callguard/spam-checker/internal/service"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	log.Println("🛡️  Starting Spam Checker...")

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("❌ Store init failed: %v", err)
	}
	defer cleanup()

	provider := twilio.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
	svc := service.NewLookupService(store, provider)

	handler := httpHandler.NewHandler(svc)

	r := chi.NewRouter()
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	handler.RegisterRoutes(r, middleware.BearerAuth(cfg.Auth.BearerToken))

	sse := mcp.NewSSEServer(mcp.NewServer(svc, version))
	go func() {
		log.Printf("🔧 MCP server (SSE) listening on %s", cfg.Server.MCPPort)
		if err := sse.Start(cfg.Server.MCPPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ MCP server error: %v", err)
		}
	}()

	log.Printf("🚀 HTTP API listening on http://localhost%s", cfg.Server.HTTPPort)
	if err := http.ListenAndServe(cfg.Server.HTTPPort, r); err != nil {
		log.Fatalf("❌ HTTP server error: %v", err)
	}
}

// buildStore selects the cache backend. Memory is the default; redis and
// scylla trade the process-lifetime cache for a shared TTL-aware one.
func buildStore(cfg *config.Config) (service.Store, func(), error) {
	switch cfg.Cache.Backend {
	case "memory":
		return memory.NewStore(), func() {}, nil

	case "redis":
		client, err := redisStore.Connect(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisStore.NewRedisStore(client), func() { client.Close() }, nil

	case "scylla":
		session, err := scylla.Connect(cfg.Cache.ScyllaKeyspace, cfg.Cache.ScyllaHost)
		if err != nil {
			return nil, nil, err
		}
		return scylla.NewScyllaStore(session), func() { session.Close() }, nil

	default:
		log.Printf("⚠️  Unknown CACHE_BACKEND %q, falling back to memory", cfg.Cache.Backend)
		return memory.NewStore(), func() {}, nil
	}
}
