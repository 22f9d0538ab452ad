package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"praxis/internal/profile/models"
)

// Cached decorates a Store with a Redis read cache. Snapshots are already
// possibly-stale by contract, so a short TTL only widens an existing window.
// Writes pass through and invalidate the cached snapshot.
type Cached struct {
	inner  Store
	redis  redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps inner with a Redis snapshot cache.
func NewCached(inner Store, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{inner: inner, redis: client, ttl: ttl, logger: logger}
}

func (c *Cached) Get(ctx context.Context, userID string) (*models.Profile, error) {
	key := cacheKey(userID)
	if raw, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var p models.Profile
		if err := json.Unmarshal(raw, &p); err == nil {
			p.UserID = userID
			return &p, nil
		}
		// Corrupt entry; fall through to the source of truth.
		c.redis.Del(ctx, key)
	}

	p, err := c.inner.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(p); err == nil {
		if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "profile cache set failed", "error", err)
		}
	}
	return p, nil
}

func (c *Cached) UpdateOnboarding(ctx context.Context, userID string, rec models.OnboardingRecord) error {
	if err := c.inner.UpdateOnboarding(ctx, userID, rec); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *Cached) AppendCompletedModule(ctx context.Context, userID, slug string) ([]string, error) {
	completed, err := c.inner.AppendCompletedModule(ctx, userID, slug)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, userID)
	return completed, nil
}

func (c *Cached) UpdateFoundationsField(ctx context.Context, userID string, field models.Field, value string) error {
	if err := c.inner.UpdateFoundationsField(ctx, userID, field, value); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *Cached) SetAccessKeyValidated(ctx context.Context, userID string, at time.Time) error {
	if err := c.inner.SetAccessKeyValidated(ctx, userID, at); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *Cached) invalidate(ctx context.Context, userID string) {
	if err := c.redis.Del(ctx, cacheKey(userID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "profile cache invalidation failed",
			"user_id", userID,
			"error", err,
		)
	}
}

func cacheKey(userID string) string {
	return "praxis:profile:" + userID
}
