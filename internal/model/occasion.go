package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OccasionStore defines persistence operations for occasions.
type OccasionStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Occasion, error)
	Create(ctx context.Context, occasion Occasion) (Occasion, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// Occasion is a gift-giving event such as a birthday or anniversary.
type Occasion struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string
	Date      time.Time
	Budget    float64
	CreatedAt time.Time
}
