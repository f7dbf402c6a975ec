package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/giftable/giftable-server/internal/mocks"
	"github.com/giftable/giftable-server/internal/model"
	"github.com/giftable/giftable-server/internal/testutil"
)

func TestOccasions_List_CacheMiss(t *testing.T) {
	store := &mocks.OccasionStore{}
	cache := &mocks.KeyValueStore{}
	svc := NewOccasions(store, cache, 5*time.Minute, testutil.MakeNoopLogger())

	userID := uuid.New()
	key := "user:" + userID.String() + ":occasions"
	occasions := []model.Occasion{{ID: uuid.New(), UserID: userID, Type: "birthday"}}

	cache.On("Get", mock.Anything, key).Return("", false)
	store.On("ListByUser", mock.Anything, userID).Return(occasions, nil)
	cache.On("Set", mock.Anything, key, mock.Anything, 5*time.Minute).Return()

	got, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, occasions, got)
	cache.AssertExpectations(t)
}

func TestOccasions_Create_InvalidatesCache(t *testing.T) {
	store := &mocks.OccasionStore{}
	cache := &mocks.KeyValueStore{}
	svc := NewOccasions(store, cache, 5*time.Minute, testutil.MakeNoopLogger())

	userID := uuid.New()
	date := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	store.On("Create", mock.Anything, mock.MatchedBy(func(o model.Occasion) bool {
		return o.UserID == userID && o.Type == "christmas" && o.Date.Equal(date) && o.ID != uuid.Nil
	})).Return(model.Occasion{ID: uuid.New(), UserID: userID, Type: "christmas", Date: date}, nil)
	cache.On("Delete", mock.Anything, "user:"+userID.String()+":occasions").Return()

	_, err := svc.Create(context.Background(), userID, "christmas", date, 200)
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestOccasions_Delete_NotFoundSkipsInvalidation(t *testing.T) {
	store := &mocks.OccasionStore{}
	cache := &mocks.KeyValueStore{}
	svc := NewOccasions(store, cache, 5*time.Minute, testutil.MakeNoopLogger())

	userID, occasionID := uuid.New(), uuid.New()
	store.On("Delete", mock.Anything, occasionID, userID).Return(model.ErrNotFound)

	err := svc.Delete(context.Background(), occasionID, userID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
