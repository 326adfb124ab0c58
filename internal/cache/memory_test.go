package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get("k")
	if !ok || string(got) != "v" {
		t.Errorf("Expected hit with v, got %q (found=%v)", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("short", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	_ = c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected a to be deleted")
	}

	_ = c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("Expected cache to be empty after Clear")
	}
}

func TestContentKey(t *testing.T) {
	a := ContentKey("rubric.json", []byte(`{"a":1}`))
	b := ContentKey("rubric.json", []byte(`{"a":2}`))
	c := ContentKey("hints.json", []byte(`{"a":1}`))

	if a == b || a == c {
		t.Error("Expected distinct keys for distinct name/content")
	}
	if a != ContentKey("rubric.json", []byte(`{"a":1}`)) {
		t.Error("Expected stable keys")
	}
}
