package jobs

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/hirely/hirely/internal/logging"
)

func setupCache(t *testing.T) *ListingCache {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewListingCache(client, time.Minute, logging.Discard())
}

func TestListingCacheRoundTrip(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("expected empty cache")
	}

	listing := []Job{{ID: "job-1", Title: "Backend Engineer", Company: "Acme"}}
	cache.Set(ctx, listing)

	got, ok := cache.Get(ctx)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].ID != "job-1" {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestListingCacheInvalidate(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()

	cache.Set(ctx, []Job{{ID: "job-1"}})
	cache.Invalidate(ctx)

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("expected cache miss after invalidation")
	}
}

func TestListingCacheNilSafe(t *testing.T) {
	var cache *ListingCache
	ctx := context.Background()

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("nil cache must miss")
	}
	cache.Set(ctx, []Job{{ID: "job-1"}})
	cache.Invalidate(ctx)

	disabled := NewListingCache(nil, time.Minute, logging.Discard())
	if _, ok := disabled.Get(ctx); ok {
		t.Fatal("disabled cache must miss")
	}
}
