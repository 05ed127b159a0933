package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type draftKey struct{}

// WithDraftMode marks ctx so that content reads bypass the response cache.
func WithDraftMode(ctx context.Context) context.Context {
	return context.WithValue(ctx, draftKey{}, true)
}

func IsDraftMode(ctx context.Context) bool {
	v, _ := ctx.Value(draftKey{}).(bool)
	return v
}

type cacheEntry struct {
	payload   []byte
	fetchedAt time.Time
}

// ResponseCache keeps raw payloads per request path for a revalidation
// window. Concurrent misses on the same path share a single load.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
	now     func() time.Time
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached payload for key if it is younger than ttl, and
// otherwise calls load. Failed loads are not cached. A ttl <= 0 or a
// draft-mode ctx always loads.
func (c *ResponseCache) Get(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if ttl <= 0 || IsDraftMode(ctx) {
		return load(ctx)
	}

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Sub(entry.fetchedAt) < ttl {
		return entry.payload, nil
	}

	// The load is shared by every caller waiting on key, so one caller
	// going away must not cancel it for the rest.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (any, error) {
		payload, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{payload: payload, fetchedAt: c.now()}
		c.mu.Unlock()
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate drops every cached payload.
func (c *ResponseCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
