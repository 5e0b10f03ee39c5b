package cache

import (
	"testing"
	"time"
)

func TestLRUGetSet(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d,%v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("missing key must not hit")
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a, making b the eviction candidate
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should survive eviction")
	}
	if c.Size() != 2 {
		t.Errorf("size = %d, want 2", c.Size())
	}
}

func TestLRUExpiryAndStaleFallback(t *testing.T) {
	c := NewLRU[string](10, time.Millisecond)
	c.Set("rate", "0.85")
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("rate"); ok {
		t.Error("expired entry must not be fresh")
	}
	if v, ok := c.GetStale("rate"); !ok || v != "0.85" {
		t.Errorf("GetStale = %q,%v; stale entries must remain readable", v, ok)
	}
}
