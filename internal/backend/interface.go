// Package backend selects and builds the document store named by
// configuration.
package backend

import (
	"context"

	"fokus/internal/store"
)

// CleanupFunc releases a backend's resources
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function
type Result struct {
	Store   store.DocumentStore
	Cleanup CleanupFunc
}

// Factory creates document stores based on configuration
type Factory interface {
	CreateStore(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for store creation
type Config struct {
	Type Type

	// File specific
	DataFilePath string

	// SQLite specific
	SQLiteDBPath string

	// Redis specific
	RedisURL string
	RedisKey string
}

// Type represents the kind of persistence backing the document
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
	RedisBackend  Type = "redis"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend, RedisBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types
func Types() []Type {
	return []Type{FileBackend, SQLiteBackend, RedisBackend, MemoryBackend}
}
