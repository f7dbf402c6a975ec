package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PersonStore defines persistence operations for gift recipients.
type PersonStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Person, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (Person, error)
	Create(ctx context.Context, person Person) (Person, error)
	Update(ctx context.Context, id, userID uuid.UUID, update PersonUpdate) (Person, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// Person is someone the user buys gifts for.
type Person struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Relationship string
	Budget       float64
	Notes        *string
	CreatedAt    time.Time
}

// PersonUpdate carries a partial update; nil fields are left unchanged.
type PersonUpdate struct {
	Name         *string
	Relationship *string
	Budget       *float64
	Notes        *string
}

// Empty reports whether the update would change nothing.
func (u PersonUpdate) Empty() bool {
	return u.Name == nil && u.Relationship == nil && u.Budget == nil && u.Notes == nil
}
