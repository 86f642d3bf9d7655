package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// GameTTL is how long a game record lives after its last write.
	// Record expiry is the store's concern; the service never deletes games.
	GameTTL time.Duration

	// MaxUpdateRetries bounds how many times an optimistic update is
	// retried when a concurrent writer invalidates the watched key.
	MaxUpdateRetries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:              "redis://localhost:6379",
		PoolSize:         10,
		MinIdleConns:     2,
		GameTTL:          24 * time.Hour,
		MaxUpdateRetries: 16,
	}
}
