package memory

import (
	"context"
	"errors"
	"testing"

	"fokus/internal/store"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.Load(ctx); !errors.Is(err, store.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}

	doc := []byte(`{"version":1}`)
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(doc) {
		t.Fatalf("got %s", got)
	}

	// The store hands out copies, not its own buffer.
	got[0] = 'X'
	again, _ := s.Load(ctx)
	if string(again) != string(doc) {
		t.Fatal("load must return an independent copy")
	}

	if err := s.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, store.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument after delete, got %v", err)
	}
}
