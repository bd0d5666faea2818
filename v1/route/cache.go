package route

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// DefaultCacheEntries is the memoization bound used when none is given.
const DefaultCacheEntries = 10_000

// CachedNormalizer memoizes a PathNormalizer in a bounded ristretto cache.
// Because normalization is a pure function the cache never changes results;
// it only saves regexp work for hot paths. Raw paths are unbounded, so the
// cache admits at most maxEntries of them.
type CachedNormalizer struct {
	next  PathNormalizer
	cache *ristretto.Cache
}

// NewCachedNormalizer wraps next with a cache holding up to maxEntries raw
// paths. maxEntries <= 0 selects DefaultCacheEntries.
func NewCachedNormalizer(next PathNormalizer, maxEntries int64) (*CachedNormalizer, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheEntries
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("route: create normalization cache: %w", err)
	}

	return &CachedNormalizer{next: next, cache: cache}, nil
}

// Normalize returns the cached label for rawPath, computing it on a miss.
func (c *CachedNormalizer) Normalize(rawPath string) string {
	if v, ok := c.cache.Get(rawPath); ok {
		return v.(string)
	}
	label := c.next.Normalize(rawPath)
	c.cache.Set(rawPath, label, 1)
	return label
}

// Close releases the cache's background goroutines.
func (c *CachedNormalizer) Close() {
	c.cache.Close()
}
