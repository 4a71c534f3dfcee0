package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	// Secret signs every issued token. The process refuses to start without it.
	Secret     string `env:"JWT_SECRET"`
	ExpiresMin int    `env:"JWT_EXPIRES_MIN, default=60"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=teamops"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	DB       int           `env:"REDIS_DB,        default=0"`
	CacheTTL time.Duration `env:"REDIS_CACHE_TTL, default=30s"`
}

// TokenTTL returns the configured token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpiresMin) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
