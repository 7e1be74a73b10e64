// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package post

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-cms/inkwell/internal/platform/constants"
)

// SlugCacheTTL bounds staleness of the published-slug list. The list only
// changes on publish/unpublish, so a short TTL is enough.
const SlugCacheTTL = 5 * time.Minute

// SlugCache caches the list of published slugs in Redis.
//
// All failures are soft: a miss is reported and the caller falls back to the
// repository. The cache never surfaces an error.
type SlugCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSlugCache constructs the cache with the default TTL.
func NewSlugCache(rdb *redis.Client, logger *slog.Logger) *SlugCache {
	return &SlugCache{
		rdb:    rdb,
		ttl:    SlugCacheTTL,
		logger: logger,
	}
}

// Get returns the cached slug list, or ok=false on a miss or any error.
func (c *SlugCache) Get(ctx context.Context) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, constants.RedisPrefixPublishedSlugs).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("slug cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var slugs []string
	if err := json.Unmarshal(raw, &slugs); err != nil {
		c.logger.Warn("slug cache payload corrupt", slog.String("error", err.Error()))
		return nil, false
	}
	return slugs, true
}

// Set stores the slug list with the configured TTL.
func (c *SlugCache) Set(ctx context.Context, slugs []string) {
	raw, err := json.Marshal(slugs)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, constants.RedisPrefixPublishedSlugs, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("slug cache write failed", slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached list. Called after publish state changes.
func (c *SlugCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, constants.RedisPrefixPublishedSlugs).Err(); err != nil {
		c.logger.Warn("slug cache invalidation failed", slog.String("error", err.Error()))
	}
}
