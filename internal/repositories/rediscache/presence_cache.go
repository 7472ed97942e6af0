// Package rediscache holds the Redis-backed caches layered over the
// persistent repositories.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skilldeck/learning-platform/internal/models"
)

// ErrCacheMiss is returned when no presence value is cached for a user.
var ErrCacheMiss = errors.New("presence cache: miss")

const presenceKeyPrefix = "presence:"

// PresenceCache keeps the latest presence status per username with a TTL, so
// status reads avoid the database on the hot path.
type PresenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPresenceCache(client *redis.Client, ttl time.Duration) *PresenceCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PresenceCache{client: client, ttl: ttl}
}

func presenceKey(username string) string {
	return presenceKeyPrefix + username
}

func (c *PresenceCache) Get(ctx context.Context, username string) (models.PresenceStatus, error) {
	value, err := c.client.Get(ctx, presenceKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("presence cache get: %w", err)
	}
	return models.PresenceStatus(value), nil
}

func (c *PresenceCache) Set(ctx context.Context, username string, status models.PresenceStatus) error {
	if err := c.client.Set(ctx, presenceKey(username), string(status), c.ttl).Err(); err != nil {
		return fmt.Errorf("presence cache set: %w", err)
	}
	return nil
}

func (c *PresenceCache) Invalidate(ctx context.Context, username string) error {
	if err := c.client.Del(ctx, presenceKey(username)).Err(); err != nil {
		return fmt.Errorf("presence cache invalidate: %w", err)
	}
	return nil
}
