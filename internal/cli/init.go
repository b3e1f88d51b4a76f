// Package cli provides common initialization shared by cmd/fokus and
// cmd/fokus-worker.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"fokus/internal/backend"
	"fokus/internal/config"
	"fokus/internal/log"
)

// SetupLogger initializes structured logging and installs it as the default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore builds the document store named by the config.
// Returns the store result or exits the process on failure.
func OpenStore(ctx context.Context, logger *log.Logger, cfg *config.Config) *backend.Result {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	if err := backendCfg.Validate(); err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateStore(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize store", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	return result
}
