package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"creatorhub/internal/domain/tiers"

	"github.com/redis/go-redis/v9"
)

const tierListTTL = 5 * time.Minute

// Tiers is the process-wide tier cache. It starts disabled; Init swaps
// in a real client once Redis is connected.
var Tiers = NewTierCache(nil)

func Init(client *redis.Client) {
	Tiers = NewTierCache(client)
}

// TierCache caches public tier listings per creator. Every tier
// mutation invalidates the creator's entry, so a stale list never
// outlives the write that changed it plus the TTL.
type TierCache struct {
	client *redis.Client
}

// NewTierCache wraps an existing client. A nil client yields a disabled
// cache whose methods are no-ops.
func NewTierCache(client *redis.Client) *TierCache {
	return &TierCache{client: client}
}

func (c *TierCache) enabled() bool {
	return c != nil && c.client != nil
}

func tierListKey(creatorID string) string {
	return fmt.Sprintf("tiers:%s", creatorID)
}

// Get returns the cached tier list for a creator, or ok=false on miss
// or when the cache is disabled.
func (c *TierCache) Get(ctx context.Context, creatorID string) ([]tiers.Tier, bool) {
	if !c.enabled() {
		return nil, false
	}

	raw, err := c.client.Get(ctx, tierListKey(creatorID)).Bytes()
	if err != nil {
		return nil, false
	}

	var out []tiers.Tier
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

// Set stores a creator's tier list. Failures are ignored: the cache is
// an optimization, never a source of truth.
func (c *TierCache) Set(ctx context.Context, creatorID string, list []tiers.Tier) {
	if !c.enabled() {
		return
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	c.client.Set(ctx, tierListKey(creatorID), raw, tierListTTL)
}

// Invalidate drops a creator's cached tier list. Called on every tier
// create, update and delete.
func (c *TierCache) Invalidate(ctx context.Context, creatorID string) {
	if !c.enabled() {
		return
	}
	c.client.Del(ctx, tierListKey(creatorID))
}
