package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/olumbah1/alx-project-nexus/internal/config"
	"github.com/olumbah1/alx-project-nexus/pkg/redis"
)

// CacheService is the advisory read cache in front of the poll store and the
// aggregation engine. Every failure is logged and treated as a miss; callers
// always have a database fallback, so the cache is never a source of truth.
type CacheService struct {
	redis  *redis.Client
	ttl    config.CacheTTL
	logger *zap.Logger
}

// NewCacheService creates a new cache service. A nil redis client disables
// caching entirely; every lookup is then a miss.
func NewCacheService(redisClient *redis.Client, ttl config.CacheTTL, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// Enabled reports whether a cache backend is configured.
func (c *CacheService) Enabled() bool {
	return c.redis != nil
}

// TTL returns the per-key-class time-to-live configuration.
func (c *CacheService) TTL() config.CacheTTL {
	return c.ttl
}

// Keys returns the environment-aware key builder.
func (c *CacheService) Keys() *redis.KeyBuilder {
	if c.redis == nil {
		return redis.NewKeyBuilder("development")
	}
	return c.redis.KeyBuilder
}

// GetJSON reads a cached value into v. Returns false on miss, corruption, or
// backend error.
func (c *CacheService) GetJSON(ctx context.Context, key string, v interface{}) bool {
	if c.redis == nil {
		return false
	}

	cached, err := c.redis.Get(ctx, key)
	if err != nil || cached == "" {
		if err != nil && !redis.IsNil(err) {
			c.logger.Warn("cache read failed, falling back", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), v); err != nil {
		c.logger.Warn("cache entry corrupted, falling back", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

// SetJSON stores a value under key with the given TTL. Errors are swallowed
// because repopulation never depends on a previous write having succeeded.
func (c *CacheService) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, key, string(data), ttl); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePoll deletes every key class that embeds the poll's vote-derived
// data. Called synchronously on the vote path before the response is
// returned, so the writer's own next read sees fresh data.
func (c *CacheService) InvalidatePoll(ctx context.Context, pollID string) {
	if c.redis == nil {
		return
	}

	kb := c.redis.KeyBuilder

	// One pattern sweep covers the poll's detail and results entries; the
	// list key sits outside the poll's scope and is deleted directly.
	if err := c.redis.InvalidatePattern(ctx, kb.KeyPollPattern(pollID)); err != nil {
		c.logger.Error("failed to invalidate poll caches",
			zap.String("poll_id", pollID),
			zap.Error(err))
	}
	if err := c.redis.Delete(ctx, kb.KeyPollList()); err != nil {
		c.logger.Error("failed to invalidate poll list cache", zap.Error(err))
	}
}

// InvalidatePollList deletes the poll list entry. Used after poll creation,
// which changes the listing but no per-poll entries.
func (c *CacheService) InvalidatePollList(ctx context.Context) {
	if c.redis == nil {
		return
	}

	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyPollList()); err != nil {
		c.logger.Error("failed to invalidate poll list cache", zap.Error(err))
	}
}

// InvalidateCategoryList deletes the category list entry.
func (c *CacheService) InvalidateCategoryList(ctx context.Context) {
	if c.redis == nil {
		return
	}

	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyCategoryList()); err != nil {
		c.logger.Error("failed to invalidate category list cache", zap.Error(err))
	}
}

// InvalidateCampaignList deletes the campaign list entry.
func (c *CacheService) InvalidateCampaignList(ctx context.Context) {
	if c.redis == nil {
		return
	}

	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyCampaignList()); err != nil {
		c.logger.Error("failed to invalidate campaign list cache", zap.Error(err))
	}
}

// TryIdempotencyLock attempts to acquire a short idempotency lock for the
// given key. Returns true when acquired, false when a duplicate request is
// already in flight within the TTL. Backend failure grants the lock; the
// storage constraint still guarantees uniqueness.
func (c *CacheService) TryIdempotencyLock(ctx context.Context, key string, ttl time.Duration) bool {
	if c.redis == nil {
		return true
	}

	ok, err := c.redis.SetNX(ctx, c.redis.KeyBuilder.KeyIdempotency(key), "1", ttl)
	if err != nil {
		c.logger.Warn("idempotency lock unavailable", zap.Error(err))
		return true
	}
	return ok
}
