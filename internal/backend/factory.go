package backend

import (
	"context"
	"fmt"

	"fokus/internal/log"
	"fokus/internal/store/file"
	"fokus/internal/store/memory"
	"fokus/internal/store/redisstore"
	"fokus/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Nop()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentStore),
	}
}

// CreateStore implements Factory.CreateStore
func (f *DefaultFactory) CreateStore(_ context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case FileBackend:
		return f.createFileStore(config)
	case SQLiteBackend:
		return f.createSQLiteStore(config)
	case RedisBackend:
		return f.createRedisStore(config)
	case MemoryBackend:
		return f.createMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createFileStore(config Config) (*Result, error) {
	st, err := file.New(config.DataFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	f.logger.Info("Initialized file backend", log.FieldBackend, FileBackend.String(), "path", st.Path())

	return &Result{Store: st}, nil
}

func (f *DefaultFactory) createSQLiteStore(config Config) (*Result, error) {
	st, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", log.FieldBackend, SQLiteBackend.String(), "db_path", config.SQLiteDBPath)

	return &Result{Store: st, Cleanup: st.Close}, nil
}

func (f *DefaultFactory) createRedisStore(config Config) (*Result, error) {
	st, err := redisstore.New(config.RedisURL, config.RedisKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis store: %w", err)
	}

	f.logger.Info("Initialized Redis backend", log.FieldBackend, RedisBackend.String(), "key", config.RedisKey)

	return &Result{Store: st, Cleanup: st.Close}, nil
}

func (f *DefaultFactory) createMemoryStore() (*Result, error) {
	f.logger.Info("Initialized memory backend", log.FieldBackend, MemoryBackend.String())
	return &Result{Store: memory.New()}, nil
}
