package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a fixed time interval during which a teacher can be booked.
// The time range is immutable after creation; only IsBooked changes, and only
// from false to true.
type AvailabilitySlot struct {
	ID        uuid.UUID `json:"id"`
	TeacherID uuid.UUID `json:"teacher_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
}

// SlotSpec describes a slot to be inserted (no ID yet).
type SlotSpec struct {
	TeacherID uuid.UUID `json:"teacher_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
}
