package store

import (
	"sync"
	"time"

	"github.com/agos-monitor/agos/internal/telemetry"
)

// Entry is one cached feed payload with the time it was fetched.
type Entry struct {
	Readings  []telemetry.Reading
	FetchedAt time.Time
}

// Cache keeps fetched payloads keyed by request parameter, typically a date
// string or "latest". It also remembers the most recent successful payload
// regardless of key, so a failed refresh can fall back to the last data the
// dashboard ever saw.
//
// Entries never expire; staleness is the consumer's call.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	latest  Entry
	hasAny  bool
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]Entry),
	}
}

// Put stores a payload under its key and promotes it to the latest
// successful payload.
func (c *Cache) Put(key string, readings []telemetry.Reading, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := Entry{Readings: readings, FetchedAt: fetchedAt}
	c.entries[key] = e
	c.latest = e
	c.hasAny = true
}

// Get returns the entry stored under exactly this key.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return e, ok
}

// LatestSuccessful returns the most recently stored payload across all keys.
func (c *Cache) LatestSuccessful() (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.latest, c.hasAny
}

// Invalidate drops the entry for a key. The latest successful payload is
// kept even if it came from that key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len returns the number of keyed entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
