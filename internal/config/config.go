package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// File backend
	DataFilePath string

	// SQLite backend
	SQLiteDBPath string

	// Redis backend
	RedisURL string
	RedisKey string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Reminder worker
	ReminderInterval  time.Duration
	ReminderStatePath string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:  getEnv("DATA_BACKEND", "file"),
		DataFilePath: getEnv("DATA_FILE_PATH", "./data/fokus.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fokus.db"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisKey:     getEnv("REDIS_KEY", "fokus:document"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fokus"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "budget_alerts"),

		ReminderInterval:  getEnvDuration("REMINDER_INTERVAL", 30*time.Second),
		ReminderStatePath: getEnv("REMINDER_STATE_PATH", "./data/reminder.state"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "file", "redis", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate file configuration if backend is file
	if c.DataBackend == "file" {
		if c.DataFilePath == "" {
			errors = append(errors, "data file path cannot be empty when using file backend")
		} else if err := ensureDir(c.DataFilePath); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create data directory for '%s': %v", c.DataFilePath, err))
		}
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(c.SQLiteDBPath); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create SQLite database directory for '%s': %v", c.SQLiteDBPath, err))
		}
	}

	// Validate Redis configuration if backend is redis
	if c.DataBackend == "redis" {
		if c.RedisURL == "" {
			errors = append(errors, "Redis URL cannot be empty when using redis backend")
		}
		if c.RedisKey == "" {
			errors = append(errors, "Redis key cannot be empty when using redis backend")
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate reminder worker configuration
	if c.ReminderInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid reminder interval %v: must be at least 1 second", c.ReminderInterval))
	} else if c.ReminderInterval > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid reminder interval %v: must be at most 1 hour", c.ReminderInterval))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
