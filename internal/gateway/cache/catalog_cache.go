// Package cache decorates the catalog gateway with a short-lived Redis page
// cache. The cache fails open: any Redis error falls through to the inner
// gateway so a missing or unhealthy Redis never breaks search.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/logger"
)

type catalogCache struct {
	inner domain.CatalogGateway
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCatalogCache wraps inner with a Redis-backed page cache keyed by the
// full filter state. The TTL should stay short; catalog totals are only
// eventually consistent to begin with.
func NewCatalogCache(inner domain.CatalogGateway, rdb *redis.Client, ttl time.Duration) domain.CatalogGateway {
	return &catalogCache{inner: inner, rdb: rdb, ttl: ttl}
}

func cacheKey(filter domain.FilterState) string {
	return fmt.Sprintf("catalog:q=%s|s=%s|l=%s|r=%s|d=%d|n=%d|o=%d",
		filter.Query, filter.Skill, filter.Location, filter.Remote,
		filter.MaxAgeDays, filter.PageSize, filter.Cursor)
}

func (c *catalogCache) FetchPage(ctx context.Context, filter domain.FilterState) (*domain.CatalogPage, error) {
	key := cacheKey(filter)

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var page domain.CatalogPage
		if json.Unmarshal(data, &page) == nil {
			return &page, nil
		}
		// Corrupt entry: drop it and refetch
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		logger.Log.Warn("catalog cache read failed, falling through", "error", err)
	}

	page, err := c.inner.FetchPage(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(page); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			logger.Log.Warn("catalog cache write failed", "error", err)
		}
	}

	return page, nil
}
