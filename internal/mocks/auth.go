package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/giftable/giftable-server/internal/model"
)

// KeyValueStore is a testify mock for model.KeyValueStore.
type KeyValueStore struct {
	mock.Mock
}

func (m *KeyValueStore) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *KeyValueStore) Set(ctx context.Context, key, value string, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *KeyValueStore) Delete(ctx context.Context, key string) {
	m.Called(ctx, key)
}

func (m *KeyValueStore) GetDelete(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

// TokenCodec is a testify mock for service.TokenCodec.
type TokenCodec struct {
	mock.Mock
}

func (m *TokenCodec) Issue(ac model.AuthContext) (string, error) {
	args := m.Called(ac)
	return args.String(0), args.Error(1)
}

func (m *TokenCodec) Validate(tokenString string) (model.AuthContext, error) {
	args := m.Called(tokenString)
	return args.Get(0).(model.AuthContext), args.Error(1)
}

// Mailer is a testify mock for service.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	args := m.Called(ctx, to, resetURL)
	return args.Error(0)
}

// Suggester is a testify mock for handler.Suggester.
type Suggester struct {
	mock.Mock
}

func (m *Suggester) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *Suggester) Suggest(ctx context.Context, req model.SuggestionRequest) ([]model.GiftSuggestion, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]model.GiftSuggestion), args.Error(1)
}
