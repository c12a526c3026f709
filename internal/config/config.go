package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envKeyListenAddr       = "LISTEN_ADDR"
	envKeyEnvironment      = "APP_ENV"
	envKeyLogLevel         = "LOG_LEVEL"
	envKeyRateLimitBackend = "RATE_LIMIT_BACKEND"
	envKeyRedisURL         = "REDIS_URL"
	envKeyOrderSecret      = "ORDER_VERIFY_SECRET"

	defaultListenAddr  = ":8080"
	defaultEnvironment = "development"
	defaultLogLevel    = "info"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	ListenAddr       string
	Environment      string
	LogLevel         string
	RateLimitBackend string
	RedisURL         string
	OrderSecret      string
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local runs. Database settings live in pkg/db.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:       getEnv(envKeyListenAddr, defaultListenAddr),
		Environment:      getEnv(envKeyEnvironment, defaultEnvironment),
		LogLevel:         getEnv(envKeyLogLevel, defaultLogLevel),
		RateLimitBackend: getEnv(envKeyRateLimitBackend, BackendMemory),
		RedisURL:         strings.TrimSpace(os.Getenv(envKeyRedisURL)),
		OrderSecret:      strings.TrimSpace(os.Getenv(envKeyOrderSecret)),
	}

	if cfg.RateLimitBackend != BackendMemory && cfg.RateLimitBackend != BackendRedis {
		return Config{}, fmt.Errorf("invalid %s: %q", envKeyRateLimitBackend, cfg.RateLimitBackend)
	}
	if cfg.RateLimitBackend == BackendRedis && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("%s=redis but missing %s", envKeyRateLimitBackend, envKeyRedisURL)
	}
	if cfg.OrderSecret == "" {
		return Config{}, fmt.Errorf("missing %s", envKeyOrderSecret)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
