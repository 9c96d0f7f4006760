package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/battlekeep/battlekeep/internal/dependencies/clock"
	"github.com/battlekeep/battlekeep/internal/services/account"
	"github.com/battlekeep/battlekeep/internal/storage"
	"github.com/battlekeep/battlekeep/internal/storage/memory"
	redisstorage "github.com/battlekeep/battlekeep/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.AccountStore
	Clock   clock.Clock

	AccountService *account.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "redis"
	StorageType string
	// RedisConfig holds Redis connection settings. A nil config or empty
	// URL does not fail startup: the app is wired with an unavailable
	// store and every repository operation reports the missing
	// configuration.
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeRedis
	}

	var store storage.AccountStore
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil || cfg.RedisConfig.URL == "" {
			logger.Warn("no store connection string configured; operations will fail until one is provided")
			store = storage.Unavailable{}
			break
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.AccountStore, clk clock.Clock, logger *slog.Logger) *App {
	return &App{
		Storage:        store,
		Clock:          clk,
		AccountService: account.New(store, clk, logger),
	}
}

// Close releases the storage backend if it holds connections.
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
