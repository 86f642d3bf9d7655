package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process configuration, read from the environment
type Config struct {
	// HTTP server
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"8080"`

	// Storage backend: "memory" or "redis"
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`

	// Redis settings (used when StorageType is "redis")
	RedisURL          string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	RedisPoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisMinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	GameTTL           time.Duration `env:"GAME_TTL" envDefault:"24h"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
