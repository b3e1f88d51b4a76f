package backend

import (
	"fmt"

	"fokus/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s (valid: %v)", appConfig.DataBackend, Types())
	}

	return Config{
		Type:         backendType,
		DataFilePath: appConfig.DataFilePath,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		RedisURL:     appConfig.RedisURL,
		RedisKey:     appConfig.RedisKey,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s (valid: %v)", c.Type, Types())
	}

	switch c.Type {
	case FileBackend:
		if c.DataFilePath == "" {
			return fmt.Errorf("data file path is required for file backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case RedisBackend:
		if c.RedisURL == "" {
			return fmt.Errorf("Redis URL is required for redis backend")
		}
		if c.RedisKey == "" {
			return fmt.Errorf("Redis key is required for redis backend")
		}
	case MemoryBackend:
		// Nothing to validate.
	}

	return nil
}
