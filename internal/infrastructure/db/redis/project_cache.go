package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teamops/teamops-api/internal/api/metrics"
	"github.com/teamops/teamops-api/internal/core/domain"
)

const listKeyPrefix = "projects:list:"

// ProjectCache caches each owner's project list in Redis.
// Key format: projects:list:<owner_subject>. Entries expire after the
// configured TTL and are dropped eagerly on any mutation by that owner, so a
// caller never sees a stale list longer than the TTL.
type ProjectCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProjectCache creates a ProjectCache wrapping the given Redis client.
func NewProjectCache(rdb *redis.Client, ttl time.Duration) *ProjectCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ProjectCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for the owner, or nil on a miss.
func (c *ProjectCache) GetList(ctx context.Context, ownerSubject string) ([]domain.Project, error) {
	b, err := c.rdb.Get(ctx, listKeyPrefix+ownerSubject).Bytes()
	if err == redis.Nil {
		metrics.ProjectCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var list []domain.Project
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	metrics.ProjectCacheTotal.WithLabelValues("hit").Inc()
	return list, nil
}

// SetList stores the owner's list.
func (c *ProjectCache) SetList(ctx context.Context, ownerSubject string, projects []domain.Project) error {
	b, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKeyPrefix+ownerSubject, b, c.ttl).Err()
}

// Invalidate drops the owner's cached list.
func (c *ProjectCache) Invalidate(ctx context.Context, ownerSubject string) error {
	return c.rdb.Del(ctx, listKeyPrefix+ownerSubject).Err()
}
