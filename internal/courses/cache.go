package courses

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeListKey = "courses:active"

// Cache wraps Redis based caching for the public course listing.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetActive returns the cached active listing, or false on a miss.
func (c *Cache) GetActive(ctx context.Context) ([]Course, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, activeListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var courses []Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, false
	}
	return courses, true
}

// SetActive stores the active listing with the configured TTL.
func (c *Cache) SetActive(ctx context.Context, courses []Course) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, activeListKey, raw, c.ttl).Err()
}

// Invalidate drops the cached listing after a write.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Del(ctx, activeListKey).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
