package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/model"
)

// userCacheKey builds the cache key for a user's derived resource list.
func userCacheKey(userID uuid.UUID, resource string) string {
	return fmt.Sprintf("user:%s:%s", userID, resource)
}

// readCached loads a cached resource list. A miss, an unreachable store or
// a stale payload all report ok=false; the caller falls back to the
// database either way.
func readCached[T any](ctx context.Context, store model.KeyValueStore, key string) ([]T, bool) {
	raw, ok := store.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		store.Delete(ctx, key)
		return nil, false
	}
	return items, true
}

// writeCache stores a resource list best-effort. Serialization failure is
// silently skipped; the cache is disposable.
func writeCache[T any](ctx context.Context, store model.KeyValueStore, key string, items []T, ttl time.Duration) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	store.Set(ctx, key, string(raw), ttl)
}
