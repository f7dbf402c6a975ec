package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/giftable/giftable-server/internal/model"
)

var _ model.PersonStore = (*PersonRepository)(nil)

type PersonRepository struct {
	db *Connection
}

func NewPersonRepository(db *Connection) *PersonRepository {
	return &PersonRepository{
		db: db,
	}
}

const personColumns = `id, user_id, name, relationship, budget, notes, created_at`

func scanPerson(row pgx.Row) (model.Person, error) {
	var p model.Person
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Relationship, &p.Budget, &p.Notes, &p.CreatedAt)
	return p, err
}

func (r *PersonRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE user_id = $1 ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read person rows: %w", err)
	}

	return people, nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (model.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = $1 AND user_id = $2`

	p, err := scanPerson(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Person{}, model.ErrNotFound
		}
		return model.Person{}, fmt.Errorf("failed to get person: %w", err)
	}

	return p, nil
}

func (r *PersonRepository) Create(ctx context.Context, person model.Person) (model.Person, error) {
	query := `INSERT INTO people (id, user_id, name, relationship, budget, notes, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + personColumns

	p, err := scanPerson(r.db.QueryRow(ctx, query,
		person.ID, person.UserID, person.Name, person.Relationship, person.Budget, person.Notes, person.CreatedAt,
	))
	if err != nil {
		return model.Person{}, fmt.Errorf("failed to create person: %w", err)
	}

	return p, nil
}

func (r *PersonRepository) Update(ctx context.Context, id, userID uuid.UUID, update model.PersonUpdate) (model.Person, error) {
	// Build a SET clause for the provided fields only.
	var fields []string
	var values []any
	idx := 1

	if update.Name != nil {
		fields = append(fields, fmt.Sprintf("name = $%d", idx))
		values = append(values, *update.Name)
		idx++
	}
	if update.Relationship != nil {
		fields = append(fields, fmt.Sprintf("relationship = $%d", idx))
		values = append(values, *update.Relationship)
		idx++
	}
	if update.Budget != nil {
		fields = append(fields, fmt.Sprintf("budget = $%d", idx))
		values = append(values, *update.Budget)
		idx++
	}
	if update.Notes != nil {
		fields = append(fields, fmt.Sprintf("notes = $%d", idx))
		values = append(values, *update.Notes)
		idx++
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, id, userID)
	}

	values = append(values, id, userID)
	query := fmt.Sprintf(`UPDATE people SET %s WHERE id = $%d AND user_id = $%d RETURNING `+personColumns,
		strings.Join(fields, ", "), idx, idx+1)

	p, err := scanPerson(r.db.QueryRow(ctx, query, values...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Person{}, model.ErrNotFound
		}
		return model.Person{}, fmt.Errorf("failed to update person: %w", err)
	}

	return p, nil
}

func (r *PersonRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM people WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
