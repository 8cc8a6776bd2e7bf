package ontology

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the entry count used when NewCache is given a
// non-positive size.
const DefaultCacheSize = 1024

// Cache is a read-through LRU wrapper around an Ontology. Lookups are
// idempotent and entries are immutable once computed, so the cache can
// be discarded at any time. It is safe for concurrent use.
type Cache struct {
	inner Ontology
	lru   *lru.Cache[string, []Related]
}

// NewCache wraps inner with an LRU cache of the given size.
func NewCache(inner Ontology, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	l, err := lru.New[string, []Related](size)
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner, lru: l}, nil
}

// Lookup returns the relations for term, consulting the cache first.
// Failed lookups are not cached so a transiently unavailable backing
// resource can recover.
func (c *Cache) Lookup(ctx context.Context, term string) ([]Related, error) {
	key := strings.ToLower(term)
	if rels, ok := c.lru.Get(key); ok {
		return rels, nil
	}

	rels, err := c.inner.Lookup(ctx, term)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, rels)
	return rels, nil
}

// Purge drops all cached entries.
func (c *Cache) Purge() { c.lru.Purge() }

// Len returns the number of cached terms.
func (c *Cache) Len() int { return c.lru.Len() }
