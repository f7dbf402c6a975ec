package model

import (
	"context"
	"time"
)

// KeyValueStore is a best-effort TTL key-value store. Implementations
// absorb infrastructure failures: a failed read reports absence, a failed
// write is silent. Callers must never treat store trouble as an error;
// the only signal is the returned value.
type KeyValueStore interface {
	// Get returns the value for key, or ok=false if absent.
	Get(ctx context.Context, key string) (value string, ok bool)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration)

	// Delete removes key if present.
	Delete(ctx context.Context, key string)

	// GetDelete atomically reads and removes key. At most one concurrent
	// caller observes ok=true for a given key.
	GetDelete(ctx context.Context, key string) (value string, ok bool)
}
