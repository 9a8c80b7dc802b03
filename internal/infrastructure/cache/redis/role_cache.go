package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
)

// RoleCache caches directory role lookups for the access gate. Entries are
// short-lived and invalidated on every role change, so a stale grant window
// is bounded by the TTL.
type RoleCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewRoleCache creates a role cache with the given entry TTL.
func NewRoleCache(client *redis.Client, logger *zap.Logger, ttl time.Duration) *RoleCache {
	return &RoleCache{
		client: client,
		logger: logger.Named("role_cache"),
		ttl:    ttl,
	}
}

func roleKey(externalID string) string {
	return fmt.Sprintf("ecowaste:role:%s", externalID)
}

// Get returns the cached role for the identity and whether it was present.
// Cache failures are reported as a miss; the access gate falls back to the
// directory.
func (c *RoleCache) Get(ctx context.Context, externalID string) (entity.UserRole, bool) {
	value, err := c.client.Get(ctx, roleKey(externalID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("failed to read role from cache",
				zap.Error(err), zap.String("external_id", externalID))
		}
		return "", false
	}
	return entity.UserRole(value), true
}

// Set caches the identity's role.
func (c *RoleCache) Set(ctx context.Context, externalID string, role entity.UserRole) {
	if err := c.client.Set(ctx, roleKey(externalID), string(role), c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache role",
			zap.Error(err), zap.String("external_id", externalID))
	}
}

// Invalidate drops the cached role, forcing the next gate check through the
// directory. Called on role changes and identity deletions.
func (c *RoleCache) Invalidate(ctx context.Context, externalID string) {
	if err := c.client.Del(ctx, roleKey(externalID)).Err(); err != nil {
		c.logger.Warn("failed to invalidate cached role",
			zap.Error(err), zap.String("external_id", externalID))
	}
}
