// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*Cache[[]string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewWithCleanup[[]string](ttl, 0)
	c.now = clock.Now
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	c := New[string](time.Minute)
	defer c.Close()

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("genres", []string{"Action", "Drama"})

	clock.Advance(59 * time.Second)
	if _, ok := c.Get("genres"); !ok {
		t.Fatal("Expected entry to exist before TTL")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("genres"); ok {
		t.Error("Expected entry to be expired at TTL")
	}

	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	c, clock := newTestCache(time.Hour)

	c.SetWithTTL("short", []string{"x"}, time.Second)
	clock.Advance(2 * time.Second)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected custom TTL to override default")
	}
}

func TestCacheDelete(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key1", nil)
	c.Delete("key1")
	c.Delete("missing")

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1 (missing keys are not counted)", got)
	}
}

func TestCacheClear(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("key%d", i), []string{"v"})
	}
	c.Clear()

	for i := 0; i < 3; i++ {
		if _, exists := c.Get(fmt.Sprintf("key%d", i)); exists {
			t.Errorf("Expected key%d to be cleared", i)
		}
	}
	stats := c.GetStats()
	if stats.TotalKeys != 0 || stats.Evictions != 3 {
		t.Errorf("stats after Clear = %+v, want 0 keys and 3 evictions", stats)
	}
}

func TestCacheCleanup(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("old", []string{"a"})
	clock.Advance(30 * time.Second)
	c.Set("new", []string{"b"})
	clock.Advance(45 * time.Second)

	c.cleanup()

	stats := c.GetStats()
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("Expected unexpired entry to survive cleanup")
	}
}

func TestCacheHitRate(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	if c.HitRate() != 0 {
		t.Errorf("HitRate() on empty cache = %v, want 0", c.HitRate())
	}

	c.Set("k", []string{"v"})
	c.Get("k")
	c.Get("k")
	c.Get("k")
	c.Get("absent")

	if got := c.HitRate(); got != 75.0 {
		t.Errorf("HitRate() = %v, want 75", got)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%5)
			c.Set(key, n)
			c.Get(key)
			if n%7 == 0 {
				c.Clear()
			}
		}(i)
	}
	wg.Wait()
}

func TestCacheCloseIdempotent(t *testing.T) {
	c := NewWithCleanup[string](time.Minute, time.Millisecond)
	c.Close()
	c.Close()
}
