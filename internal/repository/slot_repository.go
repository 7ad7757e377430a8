package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoshchina/tutorhub/internal/apperr"
	"github.com/avoshchina/tutorhub/internal/model"
	"github.com/avoshchina/tutorhub/internal/repository/base"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// ListOpen returns unbooked slots for a teacher starting at or after notBefore,
// ordered by start time.
func (r *SlotRepository) ListOpen(ctx context.Context, teacherID uuid.UUID, notBefore time.Time) ([]*model.AvailabilitySlot, error) {
	query := `
		SELECT id, teacher_id, start_at, end_at, is_booked, created_at
		FROM teacher_availability
		WHERE teacher_id = $1
		  AND is_booked = FALSE
		  AND start_at >= $2
		ORDER BY start_at
	`

	rows, err := r.pool.Query(ctx, query, teacherID, notBefore)
	if err != nil {
		return nil, base.WrapErr("list open slots", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByID returns a slot or nil if it does not exist.
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AvailabilitySlot, error) {
	query := `
		SELECT id, teacher_id, start_at, end_at, is_booked, created_at
		FROM teacher_availability
		WHERE id = $1
	`

	var slot model.AvailabilitySlot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.TeacherID,
		&slot.StartAt,
		&slot.EndAt,
		&slot.IsBooked,
		&slot.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, base.WrapErr("get slot by id", err)
	}

	return &slot, nil
}

// InsertBatch inserts a batch of slot specs and returns the created slots with
// assigned IDs. The whole batch is rejected before any write if a spec has a
// non-positive time range.
func (r *SlotRepository) InsertBatch(ctx context.Context, specs []model.SlotSpec) ([]*model.AvailabilitySlot, error) {
	for i, spec := range specs {
		if !spec.EndAt.After(spec.StartAt) {
			return nil, apperr.Validation(
				fmt.Sprintf("slots[%d]", i),
				"end_at must be after start_at",
			)
		}
	}
	if len(specs) == 0 {
		return nil, nil
	}

	query := `
		INSERT INTO teacher_availability (teacher_id, start_at, end_at)
		VALUES ($1, $2, $3)
		RETURNING id, teacher_id, start_at, end_at, is_booked, created_at
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, base.WrapErr("begin insert slots", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, spec := range specs {
		batch.Queue(query, spec.TeacherID, spec.StartAt, spec.EndAt)
	}

	results := tx.SendBatch(ctx, batch)
	slots := make([]*model.AvailabilitySlot, 0, len(specs))
	for range specs {
		var slot model.AvailabilitySlot
		err := results.QueryRow().Scan(
			&slot.ID,
			&slot.TeacherID,
			&slot.StartAt,
			&slot.EndAt,
			&slot.IsBooked,
			&slot.CreatedAt,
		)
		if err != nil {
			results.Close()
			return nil, base.WrapErr("insert slot", err)
		}
		slots = append(slots, &slot)
	}
	if err := results.Close(); err != nil {
		return nil, base.WrapErr("close insert batch", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, base.WrapErr("commit insert slots", err)
	}

	return slots, nil
}

// Book atomically marks a slot booked and creates the corresponding lesson.
// The slot row is locked for the duration of the transaction, so concurrent
// attempts on the same slot serialize; all but the first observe
// is_booked = true and fail with apperr.ErrSlotAlreadyBooked. Either both the
// flip and the lesson insert commit, or neither does.
func (r *SlotRepository) Book(ctx context.Context, slotID, studentID uuid.UUID, title *string) (*model.Lesson, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, base.WrapErr("begin booking", err)
	}
	defer tx.Rollback(ctx)

	var slot model.AvailabilitySlot
	err = tx.QueryRow(ctx, `
		SELECT id, teacher_id, start_at, end_at, is_booked, created_at
		FROM teacher_availability
		WHERE id = $1
		FOR UPDATE
	`, slotID).Scan(
		&slot.ID,
		&slot.TeacherID,
		&slot.StartAt,
		&slot.EndAt,
		&slot.IsBooked,
		&slot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrSlotNotFound
		}
		return nil, base.WrapErr("lock slot", err)
	}

	if slot.IsBooked {
		return nil, apperr.ErrSlotAlreadyBooked
	}

	tag, err := tx.Exec(ctx, `
		UPDATE teacher_availability
		SET is_booked = TRUE
		WHERE id = $1 AND is_booked = FALSE
	`, slotID)
	if err != nil {
		return nil, base.WrapErr("mark slot booked", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.ErrSlotAlreadyBooked
	}

	lesson := &model.Lesson{
		SlotID:    slot.ID,
		StudentID: studentID,
		Title:     title,
		StartAt:   slot.StartAt,
		EndAt:     slot.EndAt,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO lessons (slot_id, student_id, title, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, lesson.SlotID, lesson.StudentID, lesson.Title, lesson.StartAt, lesson.EndAt).
		Scan(&lesson.ID, &lesson.CreatedAt)
	if err != nil {
		return nil, base.WrapErr("create lesson", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, base.WrapErr("commit booking", err)
	}

	return lesson, nil
}

func scanSlots(rows pgx.Rows) ([]*model.AvailabilitySlot, error) {
	var slots []*model.AvailabilitySlot
	for rows.Next() {
		var slot model.AvailabilitySlot
		err := rows.Scan(
			&slot.ID,
			&slot.TeacherID,
			&slot.StartAt,
			&slot.EndAt,
			&slot.IsBooked,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}
	return slots, rows.Err()
}
