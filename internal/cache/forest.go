// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// forest.go caches the built category forest in Valkey as JSON. The
// forest is rebuilt from the flat rows on every structural change, so
// one key with a TTL is enough; every mutating operation invalidates.
// Cache failures only ever degrade to a direct DB read.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"paperdeck/internal/tree"
)

const (
	// forestKey is the single Valkey key holding the serialized forest.
	forestKey = "categories:forest"

	// DefaultForestTTL bounds staleness if an invalidation is ever lost.
	DefaultForestTTL = 5 * time.Minute
)

// ForestCache caches the nested category tree in Valkey.
type ForestCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewForestCache creates a forest cache backed by the given Valkey client.
func NewForestCache(client *redis.Client, ttl time.Duration) *ForestCache {
	if ttl == 0 {
		ttl = DefaultForestTTL
	}
	return &ForestCache{client: client, ttl: ttl}
}

// Get retrieves the cached forest. Returns ok=false on miss or error.
func (fc *ForestCache) Get(ctx context.Context) ([]*tree.Node, bool) {
	val, err := fc.client.Get(ctx, forestKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("forest cache get error", "error", err)
		return nil, false
	}

	var roots []*tree.Node
	if err := json.Unmarshal(val, &roots); err != nil {
		slog.Warn("forest cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("forest cache hit")
	return roots, true
}

// Set stores the forest with the configured TTL.
func (fc *ForestCache) Set(ctx context.Context, roots []*tree.Node) {
	val, err := json.Marshal(roots)
	if err != nil {
		slog.Warn("forest cache encode error", "error", err)
		return
	}
	if err := fc.client.Set(ctx, forestKey, val, fc.ttl).Err(); err != nil {
		slog.Warn("forest cache set error", "error", err)
	}
}

// Invalidate drops the cached forest. Called after every mutation.
func (fc *ForestCache) Invalidate(ctx context.Context) {
	if err := fc.client.Del(ctx, forestKey).Err(); err != nil {
		slog.Warn("forest cache invalidate error", "error", err)
	}
	slog.Debug("forest cache invalidated")
}
