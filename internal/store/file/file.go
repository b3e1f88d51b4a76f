// Package file persists the document as a single JSON file on disk, the
// closest server-side analog of the browser-local storage slot the data
// model comes from.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fokus/internal/store"
)

type Store struct {
	path string
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty document file path")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

func (s *Store) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, store.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("read document file: %w", err)
	}
	return data, nil
}

// Save writes through a temp file and renames it over the target, so a
// crash mid-write leaves the previous document intact.
func (s *Store) Save(_ context.Context, doc []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".fokus-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document file: %w", err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove document file: %w", err)
	}
	return nil
}

// Path returns the location of the document file.
func (s *Store) Path() string {
	return s.path
}
