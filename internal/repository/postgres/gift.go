package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/giftable/giftable-server/internal/model"
)

var _ model.GiftStore = (*GiftRepository)(nil)

type GiftRepository struct {
	db *Connection
}

func NewGiftRepository(db *Connection) *GiftRepository {
	return &GiftRepository{
		db: db,
	}
}

const giftColumns = `id, user_id, person_id, title, price, url, notes, status, date_added, date_purchased, date_given`

func scanGift(row pgx.Row) (model.Gift, error) {
	var g model.Gift
	err := row.Scan(
		&g.ID, &g.UserID, &g.PersonID, &g.Title, &g.Price, &g.URL, &g.Notes,
		&g.Status, &g.DateAdded, &g.DatePurchased, &g.DateGiven,
	)
	return g, err
}

func (r *GiftRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE user_id = $1 ORDER BY date_added DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	defer rows.Close()

	var gifts []model.Gift
	for rows.Next() {
		g, err := scanGift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gift: %w", err)
		}
		gifts = append(gifts, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gift rows: %w", err)
	}

	return gifts, nil
}

func (r *GiftRepository) Create(ctx context.Context, gift model.Gift) (model.Gift, error) {
	query := `INSERT INTO gifts (id, user_id, person_id, title, price, url, notes, status, date_added)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + giftColumns

	g, err := scanGift(r.db.QueryRow(ctx, query,
		gift.ID, gift.UserID, gift.PersonID, gift.Title, gift.Price, gift.URL, gift.Notes,
		gift.Status, gift.DateAdded,
	))
	if err != nil {
		return model.Gift{}, fmt.Errorf("failed to create gift: %w", err)
	}

	return g, nil
}

func (r *GiftRepository) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (model.Gift, error) {
	// Purchased and given transitions stamp their timestamps.
	var query string
	switch status {
	case model.GiftStatusPurchased:
		query = `UPDATE gifts SET status = $1, date_purchased = NOW() WHERE id = $2 AND user_id = $3 RETURNING ` + giftColumns
	case model.GiftStatusGiven:
		query = `UPDATE gifts SET status = $1, date_given = NOW() WHERE id = $2 AND user_id = $3 RETURNING ` + giftColumns
	default:
		query = `UPDATE gifts SET status = $1 WHERE id = $2 AND user_id = $3 RETURNING ` + giftColumns
	}

	g, err := scanGift(r.db.QueryRow(ctx, query, status, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Gift{}, model.ErrNotFound
		}
		return model.Gift{}, fmt.Errorf("failed to update gift status: %w", err)
	}

	return g, nil
}

func (r *GiftRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM gifts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete gift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
