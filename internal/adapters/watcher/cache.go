package watcher

import (
	"path/filepath"
	"strings"
	"sync"
	"unique"

	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

var _ ports.ModuleCache = (*ContentCache)(nil)

// ContentCache keeps module sources between rebuilds in watch mode.
// Entries are keyed by canonical path and dropped when the watcher reports a change.
type ContentCache struct {
	mu      sync.RWMutex
	loader  ports.ModuleLoader
	entries map[unique.Handle[string]]*domain.ModuleSource
}

// NewContentCache wraps loader with a cache.
func NewContentCache(loader ports.ModuleLoader) *ContentCache {
	return &ContentCache{
		loader:  loader,
		entries: make(map[unique.Handle[string]]*domain.ModuleSource),
	}
}

// Load returns the cached source for id, reading it through the wrapped loader on a miss.
// Failed loads are not cached.
func (c *ContentCache) Load(id domain.FileIdentity) (*domain.ModuleSource, error) {
	path, ok := id.Path()
	if !ok {
		return c.loader.Load(id)
	}
	key := unique.Make(path)

	c.mu.RLock()
	src, hit := c.entries[key]
	c.mu.RUnlock()
	if hit {
		return src, nil
	}

	src, err := c.loader.Load(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = src
	c.mu.Unlock()

	return src, nil
}

// Invalidate drops the entries for paths and for any file below them.
// A removed or renamed directory is reported as a single path.
func (c *ContentCache) Invalidate(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, path := range paths {
		delete(c.entries, unique.Make(path))

		prefix := path + string(filepath.Separator)
		for key := range c.entries {
			if strings.HasPrefix(key.Value(), prefix) {
				delete(c.entries, key)
			}
		}
	}
}

// Len returns the number of cached sources.
func (c *ContentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
