package cache

import (
	"testing"
	"time"
)

func TestLRUCacheSetGet(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	c.Set("a", "alpha")
	if got, ok := c.Get("a"); !ok || got != "alpha" {
		t.Errorf("Get(a) = (%q, %v), want (alpha, true)", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // touch so "b" is the eviction candidate
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive eviction")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestLRUCacheExpiry(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be expired")
	}
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	if removed := c.CleanExpired(); removed != 1 {
		t.Errorf("CleanExpired() = %d, want 1", removed)
	}
}

func TestLRUCachePurge(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()

	if c.Size() != 0 {
		t.Errorf("Size() after purge = %d, want 0", c.Size())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) after purge = true, want false")
	}
}
