package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoshchina/tutorhub/internal/repository/base"
)

type LinkRepository struct {
	pool *pgxpool.Pool
}

func NewLinkRepository(pool *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{pool: pool}
}

// Link records a parent -> student association. Duplicate links are absorbed
// by the primary key.
func (r *LinkRepository) Link(ctx context.Context, parentID, studentID uuid.UUID) error {
	query := `
		INSERT INTO parent_students (parent_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT (parent_id, student_id) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, parentID, studentID); err != nil {
		return base.WrapErr("link parent student", err)
	}
	return nil
}

// StudentIDs returns the students linked to a parent.
func (r *LinkRepository) StudentIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT student_id
		FROM parent_students
		WHERE parent_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, base.WrapErr("get linked students", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, base.WrapErr("scan linked student", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
