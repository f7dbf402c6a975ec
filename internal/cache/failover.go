package cache

import (
	"context"
	"errors"
	"time"

	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

var _ model.KeyValueStore = (*Failover)(nil)

// Failover combines the networked cache with the in-process fallback store
// behind the KeyValueStore contract. While the cache is flagged available
// operations go to it; when it is flagged down, or an operation fails
// mid-flight, the same operation lands in the fallback store instead. The
// caller never sees an error either way: a failed read is an absent value,
// a failed write is silent.
//
// This is what makes the store more than an optional accelerator: session
// and reset-token state survives a cache outage, surrendering only on
// process restart.
type Failover struct {
	redis    *Redis
	fallback *Fallback
	logger   *logger.Logger
}

// NewFailover creates a Failover over the given stores.
func NewFailover(redis *Redis, fallback *Fallback, logger *logger.Logger) *Failover {
	return &Failover{redis: redis, fallback: fallback, logger: logger}
}

// Get returns the value for key from the cache, falling back to the
// in-process store when the cache is down or does not hold the key.
func (s *Failover) Get(ctx context.Context, key string) (string, bool) {
	if !s.redis.Available() {
		return s.fallback.Get(ctx, key)
	}

	val, err := s.redis.Get(ctx, key)
	if errors.Is(err, ErrMiss) {
		// The key may have been seated in the fallback store during an
		// outage window. A revocation recorded there must keep winning
		// after the cache recovers cold.
		return s.fallback.Get(ctx, key)
	}
	if err != nil {
		s.logger.Debug("cache read failed, using fallback store", "key", key, "error", err.Error())
		return s.fallback.Get(ctx, key)
	}
	return val, true
}

// Set stores value under key for ttl.
func (s *Failover) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if !s.redis.Available() {
		s.fallback.Set(ctx, key, value, ttl)
		return
	}

	if err := s.redis.Set(ctx, key, value, ttl); err != nil {
		s.logger.Debug("cache write failed, using fallback store", "key", key, "error", err.Error())
		s.fallback.Set(ctx, key, value, ttl)
	}
}

// Delete removes key from whichever store currently holds writes. The
// fallback delete always runs so a key written during a brief outage cannot
// resurface after the cache comes back.
func (s *Failover) Delete(ctx context.Context, key string) {
	s.fallback.Delete(ctx, key)

	if !s.redis.Available() {
		return
	}
	if err := s.redis.Delete(ctx, key); err != nil {
		s.logger.Debug("cache delete failed", "key", key, "error", err.Error())
	}
}

// GetDelete atomically reads and removes key. Against the networked cache
// this is a single GETDEL; against the fallback store it is a
// read-and-delete under one lock. Either way at most one concurrent caller
// observes the value.
func (s *Failover) GetDelete(ctx context.Context, key string) (string, bool) {
	if !s.redis.Available() {
		return s.fallback.GetDelete(ctx, key)
	}

	val, err := s.redis.GetDelete(ctx, key)
	if errors.Is(err, ErrMiss) {
		// The key may have been seated in the fallback store during an
		// outage window.
		return s.fallback.GetDelete(ctx, key)
	}
	if err != nil {
		s.logger.Debug("cache getdel failed, using fallback store", "key", key, "error", err.Error())
		return s.fallback.GetDelete(ctx, key)
	}
	return val, true
}
