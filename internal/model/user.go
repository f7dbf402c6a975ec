package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]UserSummary, error)
	CountAdmins(ctx context.Context) (int, error)
	CountOtherAdmins(ctx context.Context, excluded uuid.UUID) (int, error)
}

// User represents a stored account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// UserSummary is an admin-facing listing row: the account plus how much
// data it owns.
type UserSummary struct {
	ID            uuid.UUID
	Email         string
	IsAdmin       bool
	CreatedAt     time.Time
	PeopleCount   int
	OccasionCount int
	GiftCount     int
}
