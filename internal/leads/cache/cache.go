// Package cache provides the Redis-backed lead snapshot cache.
// Reads populate it on miss; writes invalidate it (never update in place).
package cache

import (
	"context"
	"encoding/json"
	"time"

	"leadsync_backend/internal/leads/repository"
	"leadsync_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lead:"

// Key derives the cache key for a lead id.
func Key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Cache stores lead snapshots with a fixed TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New creates a lead cache over the given Redis client.
func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// Get returns the cached snapshot for a lead id. Any cache failure is logged
// and reported as a miss so the caller falls through to the store.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (repository.Lead, bool) {
	key := Key(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", "key", key, "error", err)
		}
		c.log.CacheEvent("miss", key)
		return repository.Lead{}, false
	}

	var lead repository.Lead
	if err := json.Unmarshal(data, &lead); err != nil {
		c.log.Warn("cache entry corrupt", "key", key, "error", err)
		return repository.Lead{}, false
	}

	c.log.CacheEvent("hit", key)
	return lead, true
}

// Set stores a lead snapshot with the configured TTL. Failures are logged,
// not surfaced; a missed population only costs a store round trip later.
func (c *Cache) Set(ctx context.Context, lead repository.Lead) {
	key := Key(lead.ID)

	data, err := json.Marshal(lead)
	if err != nil {
		c.log.Warn("cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err)
		return
	}

	c.log.CacheEvent("set", key)
}

// Invalidate deletes the cache entry for a lead id. Must run after the store
// commit, never before. A failed delete leaves bounded staleness until TTL.
func (c *Cache) Invalidate(ctx context.Context, id uuid.UUID) error {
	key := Key(id)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("cache invalidation failed", "key", key, "error", err)
		return err
	}
	c.log.CacheEvent("invalidate", key)
	return nil
}
