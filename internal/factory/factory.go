package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/typerace/typerace-go/internal/dependencies/clock"
	"github.com/typerace/typerace-go/internal/dependencies/ident"
	"github.com/typerace/typerace-go/internal/services/session"
	"github.com/typerace/typerace-go/internal/storage"
	"github.com/typerace/typerace-go/internal/storage/memory"
	redisstorage "github.com/typerace/typerace-go/internal/storage/redis"
	"github.com/typerace/typerace-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	Ident ident.Generator

	// Services
	SessionService *session.Service
	EventManager   *ws.Manager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), ident.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, gen ident.Generator, logger *slog.Logger) *App {
	return &App{
		Storage:        store,
		Clock:          clk,
		Ident:          gen,
		SessionService: session.New(store, clk, gen, logger),
		EventManager:   ws.NewManager(logger),
	}
}
