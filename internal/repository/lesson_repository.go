package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoshchina/tutorhub/internal/model"
	"github.com/avoshchina/tutorhub/internal/repository/base"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

const lessonColumns = `id, slot_id, student_id, title, location, start_at, end_at, created_at`

// ForStudents returns all lessons for the given students ordered by start time.
func (r *LessonRepository) ForStudents(ctx context.Context, studentIDs []uuid.UUID) ([]*model.Lesson, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE student_id = ANY($1)
		ORDER BY start_at
	`

	rows, err := r.pool.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, base.WrapErr("get lessons for students", err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

// Upcoming returns lessons starting at or after now for the given students,
// ordered by start time and truncated to limit. The truncation is a summary
// display policy, not a data constraint.
func (r *LessonRepository) Upcoming(ctx context.Context, studentIDs []uuid.UUID, now time.Time, limit int) ([]*model.Lesson, error) {
	if len(studentIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE student_id = ANY($1)
		  AND start_at >= $2
		ORDER BY start_at
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, studentIDs, now, limit)
	if err != nil {
		return nil, base.WrapErr("get upcoming lessons", err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

func scanLessons(rows pgx.Rows) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	for rows.Next() {
		var lesson model.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.SlotID,
			&lesson.StudentID,
			&lesson.Title,
			&lesson.Location,
			&lesson.StartAt,
			&lesson.EndAt,
			&lesson.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, &lesson)
	}
	return lessons, rows.Err()
}
