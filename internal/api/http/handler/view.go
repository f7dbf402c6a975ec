package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/model"
)

// Wire representations. Resource rows keep the snake_case column names
// the frontend binds to; account objects use isAdmin like the login
// payload.

type userView struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

type userDetailView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	IsAdmin   bool      `json:"isAdmin"`
}

func toUserView(u model.User) userView {
	return userView{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

type personView struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	Budget       float64   `json:"budget"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

func toPersonView(p model.Person) personView {
	return personView{
		ID:           p.ID,
		UserID:       p.UserID,
		Name:         p.Name,
		Relationship: p.Relationship,
		Budget:       p.Budget,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
}

func toPersonViews(people []model.Person) []personView {
	views := make([]personView, 0, len(people))
	for _, p := range people {
		views = append(views, toPersonView(p))
	}
	return views
}

type occasionView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type"`
	Date      string    `json:"date"`
	Budget    float64   `json:"budget"`
	CreatedAt time.Time `json:"created_at"`
}

func toOccasionView(o model.Occasion) occasionView {
	return occasionView{
		ID:        o.ID,
		UserID:    o.UserID,
		Type:      o.Type,
		Date:      o.Date.Format("2006-01-02"),
		Budget:    o.Budget,
		CreatedAt: o.CreatedAt,
	}
}

func toOccasionViews(occasions []model.Occasion) []occasionView {
	views := make([]occasionView, 0, len(occasions))
	for _, o := range occasions {
		views = append(views, toOccasionView(o))
	}
	return views
}

type giftView struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	PersonID      uuid.UUID  `json:"person_id"`
	Title         string     `json:"title"`
	Price         float64    `json:"price"`
	URL           *string    `json:"url"`
	Notes         *string    `json:"notes"`
	Status        string     `json:"status"`
	DateAdded     time.Time  `json:"date_added"`
	DatePurchased *time.Time `json:"date_purchased"`
	DateGiven     *time.Time `json:"date_given"`
}

func toGiftView(g model.Gift) giftView {
	return giftView{
		ID:            g.ID,
		UserID:        g.UserID,
		PersonID:      g.PersonID,
		Title:         g.Title,
		Price:         g.Price,
		URL:           g.URL,
		Notes:         g.Notes,
		Status:        g.Status,
		DateAdded:     g.DateAdded,
		DatePurchased: g.DatePurchased,
		DateGiven:     g.DateGiven,
	}
}

func toGiftViews(gifts []model.Gift) []giftView {
	views := make([]giftView, 0, len(gifts))
	for _, g := range gifts {
		views = append(views, toGiftView(g))
	}
	return views
}

type userSummaryView struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	OccasionCount int       `json:"occasion_count"`
	PeopleCount   int       `json:"people_count"`
	GiftCount     int       `json:"gift_count"`
}

func toUserSummaryViews(users []model.UserSummary) []userSummaryView {
	views := make([]userSummaryView, 0, len(users))
	for _, u := range users {
		views = append(views, userSummaryView{
			ID:            u.ID,
			Email:         u.Email,
			IsAdmin:       u.IsAdmin,
			CreatedAt:     u.CreatedAt,
			OccasionCount: u.OccasionCount,
			PeopleCount:   u.PeopleCount,
			GiftCount:     u.GiftCount,
		})
	}
	return views
}
