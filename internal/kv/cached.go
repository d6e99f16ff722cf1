package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of keys kept by a CachedStore when no size is given.
const DefaultCacheSize = 128

// CachedStore is a read-through, write-through LRU cache in front of another
// Store. It assumes it is the only writer to the underlying store.
type CachedStore struct {
	next   Store
	cache  *lru.Cache
	logger *slog.Logger
}

// NewCachedStore wraps next with an LRU cache holding up to size values.
func NewCachedStore(next Store, size int, logger *slog.Logger) (*CachedStore, error) {
	if next == nil {
		return nil, errors.New("underlying store cannot be nil")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}

	return &CachedStore{
		next:   next,
		cache:  cache,
		logger: logger.With("component", "kv_cache"),
	}, nil
}

var _ Store = (*CachedStore)(nil)

// Get implements Store.Get, serving hits from the cache.
func (c *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if cached, ok := c.cache.Get(key); ok {
		c.logger.DebugContext(ctx, "cache hit", "key", key)
		return append([]byte(nil), cached.([]byte)...), nil
	}

	value, err := c.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, append([]byte(nil), value...))
	return value, nil
}

// Put implements Store.Put. The cache is only updated once the underlying
// write succeeds; on failure the key is evicted so the next read goes to the store.
func (c *CachedStore) Put(ctx context.Context, key string, value []byte) error {
	if err := c.next.Put(ctx, key, value); err != nil {
		c.cache.Remove(key)
		return err
	}
	c.cache.Add(key, append([]byte(nil), value...))
	return nil
}

// Increment implements Store.Increment. Counters always go to the underlying store.
func (c *CachedStore) Increment(ctx context.Context, key string) (int64, error) {
	return c.next.Increment(ctx, key)
}

// Close closes the underlying store if it supports closing.
func (c *CachedStore) Close() error {
	c.cache.Purge()
	if closer, ok := c.next.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
