package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

// Occasions manages a user's gift-giving events, cached like People.
type Occasions struct {
	store    model.OccasionStore
	cache    model.KeyValueStore
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewOccasions creates the occasions service.
func NewOccasions(store model.OccasionStore, cache model.KeyValueStore, cacheTTL time.Duration, logger *logger.Logger) *Occasions {
	return &Occasions{store: store, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns the user's occasions ordered by date.
func (s *Occasions) List(ctx context.Context, userID uuid.UUID) ([]model.Occasion, error) {
	key := userCacheKey(userID, occasionsCacheKey)
	if cached, ok := readCached[model.Occasion](ctx, s.cache, key); ok {
		return cached, nil
	}

	occasions, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	writeCache(ctx, s.cache, key, occasions, s.cacheTTL)
	return occasions, nil
}

// Create adds an occasion for the user.
func (s *Occasions) Create(ctx context.Context, userID uuid.UUID, occasionType string, date time.Time, budget float64) (model.Occasion, error) {
	occasion, err := s.store.Create(ctx, model.Occasion{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      occasionType,
		Date:      date,
		Budget:    budget,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.Occasion{}, err
	}

	s.cache.Delete(ctx, userCacheKey(userID, occasionsCacheKey))
	return occasion, nil
}

// Delete removes the user's occasion.
func (s *Occasions) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.cache.Delete(ctx, userCacheKey(userID, occasionsCacheKey))
	return nil
}
