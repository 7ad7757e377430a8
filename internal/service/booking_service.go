package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avoshchina/tutorhub/internal/apperr"
	"github.com/avoshchina/tutorhub/internal/events"
	"github.com/avoshchina/tutorhub/internal/model"
)

type bookingSlotStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.AvailabilitySlot, error)
	ListOpen(ctx context.Context, teacherID uuid.UUID, notBefore time.Time) ([]*model.AvailabilitySlot, error)
	Book(ctx context.Context, slotID, studentID uuid.UUID, title *string) (*model.Lesson, error)
}

type teacherProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// BookingService converts open slots into lessons. The atomicity of the
// conversion lives in the slot store's Book transaction; this layer adds the
// fast-path checks, the lesson title, logging and the domain event.
type BookingService struct {
	slots    bookingSlotStore
	profiles teacherProfileStore
	events   *events.Publisher
	logger   *zap.Logger
}

func NewBookingService(
	slots bookingSlotStore,
	profiles teacherProfileStore,
	publisher *events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		slots:    slots,
		profiles: profiles,
		events:   publisher,
		logger:   logger,
	}
}

// OpenSlots lists a teacher's bookable slots from notBefore on.
func (s *BookingService) OpenSlots(ctx context.Context, teacherID uuid.UUID, notBefore time.Time) ([]*model.AvailabilitySlot, error) {
	return s.slots.ListOpen(ctx, teacherID, notBefore)
}

// Book attempts the atomic slot-to-lesson transition for a student. A slot
// that is already booked fails with apperr.ErrSlotAlreadyBooked; the caller
// must surface it and never retry on the user's behalf — a stale read should
// prompt the user to refresh availability.
func (s *BookingService) Book(ctx context.Context, slotID, studentID uuid.UUID) (*model.Lesson, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, apperr.ErrSlotNotFound
	}
	// Fast-path rejection; the transaction below re-checks under the row lock.
	if slot.IsBooked {
		return nil, apperr.ErrSlotAlreadyBooked
	}

	title := s.lessonTitle(ctx, slot.TeacherID)

	lesson, err := s.slots.Book(ctx, slotID, studentID, title)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.TypeBookingCreated, lesson.ID, map[string]any{
		"lesson_id":  lesson.ID,
		"slot_id":    lesson.SlotID,
		"student_id": lesson.StudentID,
		"teacher_id": slot.TeacherID,
		"start_at":   lesson.StartAt,
		"end_at":     lesson.EndAt,
	})

	s.logger.Info("slot booked",
		zap.String("lesson_id", lesson.ID.String()),
		zap.String("slot_id", slotID.String()),
		zap.String("student_id", studentID.String()),
		zap.Time("start_at", lesson.StartAt),
	)

	return lesson, nil
}

func (s *BookingService) lessonTitle(ctx context.Context, teacherID uuid.UUID) *string {
	title := "Lesson"
	teacher, err := s.profiles.GetByID(ctx, teacherID)
	if err == nil && teacher != nil && teacher.DisplayName != nil {
		title = fmt.Sprintf("Lesson with %s", *teacher.DisplayName)
	}
	return &title
}
