package config

import (
	"errors"
	"os"
)

type Config struct {
	Server ServerConfig
	Twilio TwilioConfig
	Auth   AuthConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	HTTPPort string
	MCPPort  string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
}

type AuthConfig struct {
	// BearerToken is the single static secret guarding /v1/classify.
	BearerToken string
}

type CacheConfig struct {
	// Backend selects the store implementation: memory, redis or scylla.
	Backend string

	ScyllaHost     string
	ScyllaKeyspace string

	RedisURL string
}

// Load reads the environment. It fails when the provider credentials are
// missing; the service must not start without them.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort: getEnv("HTTP_PORT", ":8000"),
			MCPPort:  getEnv("MCP_PORT", ":8001"),
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		},
		Auth: AuthConfig{
			BearerToken: getEnv("CLASSIFY_BEARER_TOKEN", "testtoken123"),
		},
		Cache: CacheConfig{
			Backend:        getEnv("CACHE_BACKEND", "memory"),
			ScyllaHost:     getEnv("SCYLLA_HOST", "localhost"),
			ScyllaKeyspace: getEnv("SCYLLA_KEYSPACE", "spam_checker"),
			RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		},
	}

	if cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" {
		return nil, errors.New("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
