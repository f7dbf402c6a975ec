package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/giftable/giftable-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// uniqueViolation is the postgres error code for unique constraint breaks.
const uniqueViolation = "23505"

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, email, password_hash, is_admin, created_at
			  FROM users WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	query := `SELECT id, email, password_hash, is_admin, created_at
			  FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, password_hash, is_admin, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, email, password_hash, is_admin, created_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt,
	).Scan(
		&savedUser.ID, &savedUser.Email, &savedUser.PasswordHash, &savedUser.IsAdmin, &savedUser.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (model.User, error) {
	var user model.User
	query := `UPDATE users SET is_admin = $1 WHERE id = $2
			  RETURNING id, email, password_hash, is_admin, created_at`

	err := r.db.QueryRow(ctx, query, isAdmin, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to set admin flag: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.UserSummary, error) {
	query := `SELECT
				u.id, u.email, u.is_admin, u.created_at,
				COALESCE(p.people_count, 0),
				COALESCE(o.occasion_count, 0),
				COALESCE(g.gift_count, 0)
			  FROM users u
			  LEFT JOIN (
				SELECT user_id, COUNT(*)::int AS people_count FROM people GROUP BY user_id
			  ) p ON p.user_id = u.id
			  LEFT JOIN (
				SELECT user_id, COUNT(*)::int AS occasion_count FROM occasions GROUP BY user_id
			  ) o ON o.user_id = u.id
			  LEFT JOIN (
				SELECT user_id, COUNT(*)::int AS gift_count FROM gifts GROUP BY user_id
			  ) g ON g.user_id = u.id
			  ORDER BY u.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.UserSummary
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(
			&u.ID, &u.Email, &u.IsAdmin, &u.CreatedAt,
			&u.PeopleCount, &u.OccasionCount, &u.GiftCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user summary: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*)::int FROM users WHERE is_admin = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (r *UserRepository) CountOtherAdmins(ctx context.Context, excluded uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*)::int FROM users WHERE is_admin = TRUE AND id <> $1`, excluded,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count other admins: %w", err)
	}
	return count, nil
}
