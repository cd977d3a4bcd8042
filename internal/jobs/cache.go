package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingCacheKey = "jobs:listing:v1"

// ListingCache keeps the public job listing in Redis for a short TTL.
// All methods are nil-safe and fail open: a cache error never fails the
// request, it only costs a database round trip.
type ListingCache struct {
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewListingCache builds a listing cache. A nil client disables caching.
func NewListingCache(cache *redis.Client, ttl time.Duration, logger *slog.Logger) *ListingCache {
	return &ListingCache{cache: cache, ttl: ttl, logger: logger}
}

// Get returns the cached listing and whether it was present.
func (lc *ListingCache) Get(ctx context.Context) ([]Job, bool) {
	if lc == nil || lc.cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	payload, err := lc.cache.Get(ctx, listingCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			lc.logger.Warn("listing cache read failed", slog.Any("error", err))
		}
		return nil, false
	}
	var listing []Job
	if err := json.Unmarshal([]byte(payload), &listing); err != nil {
		lc.logger.Warn("listing cache decode failed", slog.Any("error", err))
		return nil, false
	}
	return listing, true
}

// Set stores the listing.
func (lc *ListingCache) Set(ctx context.Context, listing []Job) {
	if lc == nil || lc.cache == nil {
		return
	}
	payload, err := json.Marshal(listing)
	if err != nil {
		lc.logger.Warn("listing cache encode failed", slog.Any("error", err))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := lc.cache.Set(ctx, listingCacheKey, payload, lc.ttl).Err(); err != nil {
		lc.logger.Warn("listing cache write failed", slog.Any("error", err))
	}
}

// Invalidate drops the cached listing after any job mutation.
func (lc *ListingCache) Invalidate(ctx context.Context) {
	if lc == nil || lc.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := lc.cache.Del(ctx, listingCacheKey).Err(); err != nil {
		lc.logger.Warn("listing cache invalidation failed", slog.Any("error", err))
	}
}
