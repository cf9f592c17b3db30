package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// CachedPricing decorates PricingRepo with a short-TTL Redis cache for
// the two lookups the webhook path hammers: active crop and spray rows.
// With a nil client it is a transparent pass-through, so the webhook
// keeps working when Redis is down. Admin writes call Invalidate; the
// TTL bounds staleness if that best-effort delete is lost.
type CachedPricing struct {
	Repo *PricingRepo
	RDB  *redis.Client
	TTL  time.Duration
}

// NewCachedPricing wraps repo with the given client and TTL. A TTL of
// zero disables caching.
func NewCachedPricing(repo *PricingRepo, rdb *redis.Client, ttl time.Duration) *CachedPricing {
	return &CachedPricing{Repo: repo, RDB: rdb, TTL: ttl}
}

const (
	cropsCacheKey  = "pricing:crops:active"
	spraysCacheKey = "pricing:sprays:active"
)

// ListActiveCrops returns active crop rows, cached.
func (c *CachedPricing) ListActiveCrops(ctx context.Context) ([]model.CropType, error) {
	var out []model.CropType
	if c.cacheGet(ctx, cropsCacheKey, &out) {
		return out, nil
	}
	out, err := c.Repo.ListActiveCrops(ctx)
	if err != nil {
		return nil, err
	}
	c.cacheSet(ctx, cropsCacheKey, out)
	return out, nil
}

// ListActiveSprays returns active spray rows, cached.
func (c *CachedPricing) ListActiveSprays(ctx context.Context) ([]model.SprayType, error) {
	var out []model.SprayType
	if c.cacheGet(ctx, spraysCacheKey, &out) {
		return out, nil
	}
	out, err := c.Repo.ListActiveSprays(ctx)
	if err != nil {
		return nil, err
	}
	c.cacheSet(ctx, spraysCacheKey, out)
	return out, nil
}

// Invalidate drops both cached lists after an admin pricing write.
func (c *CachedPricing) Invalidate(ctx context.Context) {
	if c.RDB == nil {
		return
	}
	_ = c.RDB.Del(ctx, cropsCacheKey, spraysCacheKey).Err()
}

func (c *CachedPricing) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if c.RDB == nil || c.TTL <= 0 {
		return false
	}
	raw, err := c.RDB.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *CachedPricing) cacheSet(ctx context.Context, key string, v interface{}) {
	if c.RDB == nil || c.TTL <= 0 {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	// Best effort; a failed SET only costs a future DB read.
	_ = c.RDB.Set(ctx, key, raw, c.TTL).Err()
}
