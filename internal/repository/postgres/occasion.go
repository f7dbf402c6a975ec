package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/model"
)

var _ model.OccasionStore = (*OccasionRepository)(nil)

type OccasionRepository struct {
	db *Connection
}

func NewOccasionRepository(db *Connection) *OccasionRepository {
	return &OccasionRepository{
		db: db,
	}
}

func (r *OccasionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Occasion, error) {
	query := `SELECT id, user_id, type, date, budget, created_at
			  FROM occasions WHERE user_id = $1 ORDER BY date ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list occasions: %w", err)
	}
	defer rows.Close()

	var occasions []model.Occasion
	for rows.Next() {
		var o model.Occasion
		if err := rows.Scan(&o.ID, &o.UserID, &o.Type, &o.Date, &o.Budget, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan occasion: %w", err)
		}
		occasions = append(occasions, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read occasion rows: %w", err)
	}

	return occasions, nil
}

func (r *OccasionRepository) Create(ctx context.Context, occasion model.Occasion) (model.Occasion, error) {
	query := `INSERT INTO occasions (id, user_id, type, date, budget, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, user_id, type, date, budget, created_at`

	var saved model.Occasion
	err := r.db.QueryRow(ctx, query,
		occasion.ID, occasion.UserID, occasion.Type, occasion.Date, occasion.Budget, occasion.CreatedAt,
	).Scan(&saved.ID, &saved.UserID, &saved.Type, &saved.Date, &saved.Budget, &saved.CreatedAt)
	if err != nil {
		return model.Occasion{}, fmt.Errorf("failed to create occasion: %w", err)
	}

	return saved, nil
}

func (r *OccasionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM occasions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete occasion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
