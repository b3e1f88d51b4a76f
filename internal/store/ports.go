// Package store defines the document-store port and its shared errors.
// The whole application state is one JSON document held under a single slot;
// gateways only move opaque bytes and never interpret them.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNoDocument is returned by Load when nothing has been saved yet.
	ErrNoDocument = errors.New("no document stored")

	// ErrPersistence wraps gateway I/O failures. A failed save never rolls
	// back the in-memory mutation that preceded it; callers are only told.
	ErrPersistence = errors.New("persistence failure")
)

// DocumentStore is the persistence gateway the session writes through.
type DocumentStore interface {
	// Load returns the raw persisted document, or ErrNoDocument.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the persisted document wholesale.
	Save(ctx context.Context, doc []byte) error

	// Delete removes the persisted document. Deleting an absent document
	// is not an error.
	Delete(ctx context.Context) error
}
