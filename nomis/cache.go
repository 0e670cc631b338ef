package nomis

import (
	"fmt"
	"log"
	"sync"

	"github.com/golang/snappy"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ============================================================================
// FETCH CACHE — response bodies keyed by dataset, year and fixed parameters
// ============================================================================
// The cache holds raw bodies, not decoded tables: every hit is decoded
// into a fresh table, so no two callers share one.
//
// Eviction policy is a property of the implementation:
//   MemoryCache — never evicts; entries live for the process lifetime
//   LRUCache    — bounded; least recently used entry goes first
//
// Both are safe for concurrent use.
// ============================================================================

// CacheKey identifies one fetch.
type CacheKey struct {
	Dataset  string
	Time     string
	Measures int
	Gender   int
	Age      int
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s|%s=%s|%s=%d|%s=%d|%s=%d",
		k.Dataset, ParamTime, k.Time, ParamMeasures, k.Measures, ParamGender, k.Gender, ParamAge, k.Age)
}

// Cache stores response bodies.
type Cache interface {
	Get(key CacheKey) ([]byte, bool)
	Add(key CacheKey, body []byte)
	Len() int
}

// ============================================================================
// MEMORY CACHE — process lifetime, snappy-compressed entries
// ============================================================================

// MemoryCache keeps every body until the process exits.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[CacheKey][]byte
}

// NewMemoryCache creates an empty never-evicting cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[CacheKey][]byte)}
}

func (c *MemoryCache) Get(key CacheKey) ([]byte, bool) {
	c.mu.RLock()
	compressed, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	body, err := snappy.Decode(nil, compressed)
	if err != nil {
		log.Printf("⚠️ popstat: dropping corrupt cache entry %s: %v", key, err)
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return body, true
}

func (c *MemoryCache) Add(key CacheKey, body []byte) {
	compressed := snappy.Encode(nil, body)
	c.mu.Lock()
	c.entries[key] = compressed
	c.mu.Unlock()
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ============================================================================
// LRU CACHE — bounded
// ============================================================================

// LRUCache keeps at most size bodies.
type LRUCache struct {
	entries *lru.Cache[CacheKey, []byte]
}

// NewLRUCache creates a cache holding at most size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	entries, err := lru.New[CacheKey, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &LRUCache{entries: entries}, nil
}

func (c *LRUCache) Get(key CacheKey) ([]byte, bool) {
	return c.entries.Get(key)
}

func (c *LRUCache) Add(key CacheKey, body []byte) {
	if evicted := c.entries.Add(key, body); evicted {
		log.Printf("🗑️ popstat: cache full, evicted least recently used entry")
	}
}

func (c *LRUCache) Len() int { return c.entries.Len() }
