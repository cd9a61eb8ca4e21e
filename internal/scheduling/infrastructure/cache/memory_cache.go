package cache

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryResultCache is the process-local cache used when Redis is not
// configured. Entries are encoded like the Redis cache so callers never
// share slices with a cached value.
type MemoryResultCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryResultCache creates an in-memory cache.
func NewMemoryResultCache(ttl time.Duration) *MemoryResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryResultCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached result for key. Expired entries are dropped.
func (c *MemoryResultCache) Get(_ context.Context, key string) (domain.SchedulingResult, bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return domain.SchedulingResult{}, false, nil
	}
	result, err := decodeResult(entry.data)
	if err != nil {
		return domain.SchedulingResult{}, false, err
	}
	return result, true, nil
}

// Set stores the result under key.
func (c *MemoryResultCache) Set(_ context.Context, key string, result domain.SchedulingResult) error {
	data, err := encodeResult(result)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{data: data, expiresAt: c.now().Add(c.ttl)}
	return nil
}
