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

func newGiftsFixture() (*Gifts, *mocks.GiftStore, *mocks.PersonStore, *mocks.KeyValueStore) {
	store := &mocks.GiftStore{}
	people := &mocks.PersonStore{}
	cache := &mocks.KeyValueStore{}
	svc := NewGifts(store, people, cache, 5*time.Minute, testutil.MakeNoopLogger())
	return svc, store, people, cache
}

func TestGifts_Create_ChecksPersonOwnership(t *testing.T) {
	svc, store, people, cache := newGiftsFixture()
	userID, personID := uuid.New(), uuid.New()

	people.On("GetByID", mock.Anything, personID, userID).Return(model.Person{ID: personID, UserID: userID}, nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(g model.Gift) bool {
		return g.UserID == userID && g.PersonID == personID && g.Status == model.GiftStatusIdea
	})).Return(model.Gift{ID: uuid.New(), UserID: userID, PersonID: personID}, nil)
	cache.On("Delete", mock.Anything, "user:"+userID.String()+":gifts").Return()

	_, err := svc.Create(context.Background(), userID, personID, "Lego set", 49.99, nil, nil, "")
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestGifts_Create_ForeignPerson(t *testing.T) {
	svc, store, people, _ := newGiftsFixture()
	userID, personID := uuid.New(), uuid.New()

	people.On("GetByID", mock.Anything, personID, userID).Return(model.Person{}, model.ErrNotFound)

	_, err := svc.Create(context.Background(), userID, personID, "Lego set", 49.99, nil, nil, "")
	assert.ErrorIs(t, err, model.ErrNotFound)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGifts_UpdateStatus_InvalidatesCache(t *testing.T) {
	svc, store, _, cache := newGiftsFixture()
	userID, giftID := uuid.New(), uuid.New()

	store.On("UpdateStatus", mock.Anything, giftID, userID, model.GiftStatusPurchased).
		Return(model.Gift{ID: giftID, UserID: userID, Status: model.GiftStatusPurchased}, nil)
	cache.On("Delete", mock.Anything, "user:"+userID.String()+":gifts").Return()

	gift, err := svc.UpdateStatus(context.Background(), giftID, userID, model.GiftStatusPurchased)
	require.NoError(t, err)
	assert.Equal(t, model.GiftStatusPurchased, gift.Status)
	cache.AssertExpectations(t)
}

func TestGifts_UpdateStatus_NotFound(t *testing.T) {
	svc, store, _, cache := newGiftsFixture()
	userID, giftID := uuid.New(), uuid.New()

	store.On("UpdateStatus", mock.Anything, giftID, userID, model.GiftStatusGiven).
		Return(model.Gift{}, model.ErrNotFound)

	_, err := svc.UpdateStatus(context.Background(), giftID, userID, model.GiftStatusGiven)
	assert.ErrorIs(t, err, model.ErrNotFound)
	cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGifts_Delete(t *testing.T) {
	svc, store, _, cache := newGiftsFixture()
	userID, giftID := uuid.New(), uuid.New()

	store.On("Delete", mock.Anything, giftID, userID).Return(nil)
	cache.On("Delete", mock.Anything, "user:"+userID.String()+":gifts").Return()

	err := svc.Delete(context.Background(), giftID, userID)
	require.NoError(t, err)
	cache.AssertExpectations(t)
}
