// Package memory is an in-process document store for tests and local
// development. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"fokus/internal/store"
)

type Store struct {
	mu     sync.Mutex
	doc    []byte
	stored bool
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stored {
		return nil, store.ErrNoDocument
	}
	out := make([]byte, len(s.doc))
	copy(out, s.doc)
	return out, nil
}

func (s *Store) Save(_ context.Context, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = make([]byte, len(doc))
	copy(s.doc, doc)
	s.stored = true
	return nil
}

func (s *Store) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	s.stored = false
	return nil
}
