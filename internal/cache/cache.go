// Package cache holds the per-session result cache, keyed by the validated
// SQL text. Entries live for the session only; the size bound is the sole
// eviction policy.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/kyleking/dwh-analyst/internal/types"
)

// Stats reports cache effectiveness for the status surface.
type Stats struct {
	Entries int `json:"entries"`
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
}

// ResultCache is a bounded in-memory cache of execution results. Reads and
// writes are safe for concurrent use.
type ResultCache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
	hits       int
	misses     int
}

type cacheEntry struct {
	key    string
	result *types.ExecutionResult
}

// New creates a result cache bounded to maxEntries (minimum 1).
func New(maxEntries int) *ResultCache {
	if maxEntries < 1 {
		maxEntries = 1
	}

	return &ResultCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

// Get returns the cached result for the validated SQL, if present.
func (c *ResultCache) Get(validatedSQL string) (*types.ExecutionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[keyFor(validatedSQL)]
	if !ok {
		c.misses++
		return nil, false
	}

	c.order.MoveToFront(elem)
	c.hits++

	return elem.Value.(*cacheEntry).result, true
}

// Set stores a result, evicting the least recently used entry when full.
// Demo results are cached too; their Source flag travels with them.
func (c *ResultCache) Set(validatedSQL string, result *types.ExecutionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := keyFor(validatedSQL)

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).result = result
		c.order.MoveToFront(elem)

		return
	}

	if c.order.Len() >= c.maxEntries {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, result: result})
}

// Stats returns a snapshot of cache counters.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{Entries: c.order.Len(), Hits: c.hits, Misses: c.misses}
}

// Clear empties the cache; used when the session mode changes.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

func keyFor(validatedSQL string) string {
	sum := sha256.Sum256([]byte(validatedSQL))
	return hex.EncodeToString(sum[:])
}
