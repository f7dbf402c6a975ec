package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

const (
	peopleCacheKey    = "people"
	giftsCacheKey     = "gifts"
	occasionsCacheKey = "occasions"
)

// People manages a user's gift recipients, with a read-through list cache
// invalidated on every write.
type People struct {
	store    model.PersonStore
	cache    model.KeyValueStore
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewPeople creates the people service.
func NewPeople(store model.PersonStore, cache model.KeyValueStore, cacheTTL time.Duration, logger *logger.Logger) *People {
	return &People{store: store, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns the user's people ordered by name.
func (s *People) List(ctx context.Context, userID uuid.UUID) ([]model.Person, error) {
	key := userCacheKey(userID, peopleCacheKey)
	if cached, ok := readCached[model.Person](ctx, s.cache, key); ok {
		return cached, nil
	}

	people, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	writeCache(ctx, s.cache, key, people, s.cacheTTL)
	return people, nil
}

// Create adds a person for the user.
func (s *People) Create(ctx context.Context, userID uuid.UUID, name, relationship string, budget float64, notes *string) (model.Person, error) {
	person, err := s.store.Create(ctx, model.Person{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Relationship: relationship,
		Budget:       budget,
		Notes:        notes,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return model.Person{}, err
	}

	s.cache.Delete(ctx, userCacheKey(userID, peopleCacheKey))
	return person, nil
}

// Update applies a partial update to the user's person.
func (s *People) Update(ctx context.Context, id, userID uuid.UUID, update model.PersonUpdate) (model.Person, error) {
	person, err := s.store.Update(ctx, id, userID, update)
	if err != nil {
		return model.Person{}, err
	}

	s.cache.Delete(ctx, userCacheKey(userID, peopleCacheKey))
	return person, nil
}

// Delete removes the user's person. Gifts cascade away with the person, so
// the gifts cache is invalidated too.
func (s *People) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.cache.Delete(ctx, userCacheKey(userID, peopleCacheKey))
	s.cache.Delete(ctx, userCacheKey(userID, giftsCacheKey))
	return nil
}
