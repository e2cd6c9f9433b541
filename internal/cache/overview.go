// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// overview.go caches the serialized category overview (the home view's
// category list with product counts) so repeated browsing skips the GROUP BY
// round trip. Every admin mutation invalidates it.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// overviewKey is the Valkey key holding the serialized overview.
	overviewKey = "catalog:overview"

	// DefaultOverviewTTL bounds staleness if an invalidation is ever missed.
	DefaultOverviewTTL = 5 * time.Minute
)

// OverviewCache stores the marshaled category overview in Valkey.
type OverviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOverviewCache creates an overview cache backed by the given Valkey client.
func NewOverviewCache(client *redis.Client, ttl time.Duration) *OverviewCache {
	if ttl == 0 {
		ttl = DefaultOverviewTTL
	}
	return &OverviewCache{client: client, ttl: ttl}
}

// Get retrieves the cached overview payload. Returns false on miss; cache
// errors degrade to a miss.
func (oc *OverviewCache) Get(ctx context.Context) ([]byte, bool) {
	val, err := oc.client.Get(ctx, overviewKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("overview cache get error", "error", err)
		return nil, false
	}
	slog.Debug("overview cache hit")
	return val, true
}

// Set stores the overview payload with the configured TTL.
func (oc *OverviewCache) Set(ctx context.Context, payload []byte) {
	if err := oc.client.Set(ctx, overviewKey, payload, oc.ttl).Err(); err != nil {
		slog.Warn("overview cache set error", "error", err)
	}
}

// Invalidate drops the cached overview. Called after every category or
// product mutation.
func (oc *OverviewCache) Invalidate(ctx context.Context) {
	if err := oc.client.Del(ctx, overviewKey).Err(); err != nil {
		slog.Warn("overview cache invalidate error", "error", err)
	}
	slog.Debug("overview cache invalidated")
}
