package sheetpos

import (
	"context"
	"fmt"
	"sync"
)

// SheetIDCache remembers resolved sheet ids per title. The store resolves a
// title once and reuses the id for the lifetime of the cache; supply a fresh
// cache to re-resolve after a sheet is renamed or recreated.
type SheetIDCache interface {
	Get(title string) (int64, bool)
	Put(title string, id int64)
}

// MapCache is the default SheetIDCache: a mutex-guarded map with no
// expiry. Resolution is idempotent, so concurrent fills are harmless.
type MapCache struct {
	mu  sync.Mutex
	ids map[string]int64
}

// NewMapCache creates an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{ids: make(map[string]int64)}
}

// Get returns the cached id for a title.
func (c *MapCache) Get(title string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.ids[title]
	return id, ok
}

// Put stores the id for a title.
func (c *MapCache) Put(title string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[title] = id
}

// sheetID resolves a sheet title to its internal id, consulting the cache
// first. Mutating callers abort on failure rather than guessing an id.
func (s *Store) sheetID(ctx context.Context, title string) (int64, error) {
	if id, ok := s.cache.Get(title); ok {
		return id, nil
	}
	id, err := s.backend.SheetID(ctx, title)
	if err != nil {
		return 0, fmt.Errorf("resolve sheet %q: %w", title, err)
	}
	s.cache.Put(title, id)
	s.log.Debug("resolved sheet id", "title", title, "id", id)
	return id, nil
}
