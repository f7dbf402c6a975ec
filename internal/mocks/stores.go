package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/giftable/giftable-server/internal/model"
)

// UserStore is a testify mock for model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *UserStore) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (model.User, error) {
	args := m.Called(ctx, id, isAdmin)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserStore) List(ctx context.Context) ([]model.UserSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *UserStore) CountAdmins(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *UserStore) CountOtherAdmins(ctx context.Context, excluded uuid.UUID) (int, error) {
	args := m.Called(ctx, excluded)
	return args.Int(0), args.Error(1)
}

// PersonStore is a testify mock for model.PersonStore.
type PersonStore struct {
	mock.Mock
}

func (m *PersonStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Person, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Person), args.Error(1)
}

func (m *PersonStore) GetByID(ctx context.Context, id, userID uuid.UUID) (model.Person, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(model.Person), args.Error(1)
}

func (m *PersonStore) Create(ctx context.Context, person model.Person) (model.Person, error) {
	args := m.Called(ctx, person)
	return args.Get(0).(model.Person), args.Error(1)
}

func (m *PersonStore) Update(ctx context.Context, id, userID uuid.UUID, update model.PersonUpdate) (model.Person, error) {
	args := m.Called(ctx, id, userID, update)
	return args.Get(0).(model.Person), args.Error(1)
}

func (m *PersonStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// OccasionStore is a testify mock for model.OccasionStore.
type OccasionStore struct {
	mock.Mock
}

func (m *OccasionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Occasion, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Occasion), args.Error(1)
}

func (m *OccasionStore) Create(ctx context.Context, occasion model.Occasion) (model.Occasion, error) {
	args := m.Called(ctx, occasion)
	return args.Get(0).(model.Occasion), args.Error(1)
}

func (m *OccasionStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// GiftStore is a testify mock for model.GiftStore.
type GiftStore struct {
	mock.Mock
}

func (m *GiftStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Gift, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Gift), args.Error(1)
}

func (m *GiftStore) Create(ctx context.Context, gift model.Gift) (model.Gift, error) {
	args := m.Called(ctx, gift)
	return args.Get(0).(model.Gift), args.Error(1)
}

func (m *GiftStore) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (model.Gift, error) {
	args := m.Called(ctx, id, userID, status)
	return args.Get(0).(model.Gift), args.Error(1)
}

func (m *GiftStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
