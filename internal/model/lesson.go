package model

import (
	"time"

	"github.com/google/uuid"
)

// Lesson is a confirmed booking between a student and a teacher. It is created
// exactly once as the side effect of booking a slot and is read-only afterward.
// Its time range always equals the originating slot's.
type Lesson struct {
	ID        uuid.UUID `json:"id"`
	SlotID    uuid.UUID `json:"slot_id"`
	StudentID uuid.UUID `json:"student_id"`
	Title     *string   `json:"title"`
	Location  *string   `json:"location"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	CreatedAt time.Time `json:"created_at"`
}
