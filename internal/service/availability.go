package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avoshchina/tutorhub/internal/events"
	"github.com/avoshchina/tutorhub/internal/model"
)

// GenerateSlots produces the slot specs for a teacher's availability window.
// Slot i of each day starts at hour 9 + 2*i UTC on each of days consecutive
// calendar dates, beginning at startDateUTC's date component. Deterministic
// and free of I/O; persisting the specs is the slot store's job.
func GenerateSlots(teacherID uuid.UUID, startDateUTC time.Time, days, slotsPerDay, slotMinutes int) []model.SlotSpec {
	if days <= 0 || slotsPerDay <= 0 {
		return nil
	}
	if slotMinutes <= 0 {
		slotMinutes = 60
	}

	utc := startDateUTC.UTC()
	baseDate := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	specs := make([]model.SlotSpec, 0, days*slotsPerDay)
	for day := 0; day < days; day++ {
		date := baseDate.AddDate(0, 0, day)
		for i := 0; i < slotsPerDay; i++ {
			start := date.Add(time.Duration(9+2*i) * time.Hour)
			specs = append(specs, model.SlotSpec{
				TeacherID: teacherID,
				StartAt:   start,
				EndAt:     start.Add(time.Duration(slotMinutes) * time.Minute),
			})
		}
	}

	return specs
}

type slotInserter interface {
	InsertBatch(ctx context.Context, specs []model.SlotSpec) ([]*model.AvailabilitySlot, error)
}

// AvailabilityService seeds future open slots for a teacher. It runs on
// demand as an admin operation; there is no background cadence.
type AvailabilityService struct {
	slots  slotInserter
	events *events.Publisher
	logger *zap.Logger
}

func NewAvailabilityService(slots slotInserter, publisher *events.Publisher, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		slots:  slots,
		events: publisher,
		logger: logger,
	}
}

// Seed generates and persists slots for the given window.
func (s *AvailabilityService) Seed(ctx context.Context, teacherID uuid.UUID, startDateUTC time.Time, days, slotsPerDay, slotMinutes int) ([]*model.AvailabilitySlot, error) {
	specs := GenerateSlots(teacherID, startDateUTC, days, slotsPerDay, slotMinutes)
	if len(specs) == 0 {
		return nil, nil
	}

	slots, err := s.slots.InsertBatch(ctx, specs)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.TypeAvailabilitySeeded, teacherID, map[string]any{
		"teacher_id": teacherID,
		"count":      len(slots),
		"from":       slots[0].StartAt,
		"to":         slots[len(slots)-1].EndAt,
	})

	s.logger.Info("availability seeded",
		zap.String("teacher_id", teacherID.String()),
		zap.Int("slots", len(slots)),
		zap.Time("start_date", startDateUTC),
	)

	return slots, nil
}
