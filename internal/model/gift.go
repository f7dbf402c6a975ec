package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Gift lifecycle states.
const (
	GiftStatusIdea      = "idea"
	GiftStatusPurchased = "purchased"
	GiftStatusGiven     = "given"
)

// ValidGiftStatus reports whether s is one of the known gift states.
func ValidGiftStatus(s string) bool {
	return s == GiftStatusIdea || s == GiftStatusPurchased || s == GiftStatusGiven
}

// GiftStore defines persistence operations for gift ideas.
type GiftStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Gift, error)
	Create(ctx context.Context, gift Gift) (Gift, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (Gift, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// Gift is a gift idea tracked for a person.
type Gift struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	PersonID      uuid.UUID
	Title         string
	Price         float64
	URL           *string
	Notes         *string
	Status        string
	DateAdded     time.Time
	DatePurchased *time.Time
	DateGiven     *time.Time
}
