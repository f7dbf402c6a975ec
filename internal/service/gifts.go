package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

// Gifts manages a user's gift ideas, cached like People. Creation checks
// that the target person belongs to the same user.
type Gifts struct {
	store    model.GiftStore
	people   model.PersonStore
	cache    model.KeyValueStore
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewGifts creates the gifts service.
func NewGifts(store model.GiftStore, people model.PersonStore, cache model.KeyValueStore, cacheTTL time.Duration, logger *logger.Logger) *Gifts {
	return &Gifts{store: store, people: people, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns the user's gifts, newest first.
func (s *Gifts) List(ctx context.Context, userID uuid.UUID) ([]model.Gift, error) {
	key := userCacheKey(userID, giftsCacheKey)
	if cached, ok := readCached[model.Gift](ctx, s.cache, key); ok {
		return cached, nil
	}

	gifts, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	writeCache(ctx, s.cache, key, gifts, s.cacheTTL)
	return gifts, nil
}

// Create adds a gift idea for one of the user's people. A personID that
// does not belong to the user yields model.ErrNotFound.
func (s *Gifts) Create(ctx context.Context, userID, personID uuid.UUID, title string, price float64, url, notes *string, status string) (model.Gift, error) {
	if _, err := s.people.GetByID(ctx, personID, userID); err != nil {
		return model.Gift{}, err
	}

	if status == "" {
		status = model.GiftStatusIdea
	}

	gift, err := s.store.Create(ctx, model.Gift{
		ID:        uuid.New(),
		UserID:    userID,
		PersonID:  personID,
		Title:     title,
		Price:     price,
		URL:       url,
		Notes:     notes,
		Status:    status,
		DateAdded: time.Now(),
	})
	if err != nil {
		return model.Gift{}, err
	}

	s.cache.Delete(ctx, userCacheKey(userID, giftsCacheKey))
	return gift, nil
}

// UpdateStatus moves a gift between idea, purchased and given.
func (s *Gifts) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (model.Gift, error) {
	gift, err := s.store.UpdateStatus(ctx, id, userID, status)
	if err != nil {
		return model.Gift{}, err
	}

	s.cache.Delete(ctx, userCacheKey(userID, giftsCacheKey))
	return gift, nil
}

// Delete removes the user's gift.
func (s *Gifts) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.cache.Delete(ctx, userCacheKey(userID, giftsCacheKey))
	return nil
}
