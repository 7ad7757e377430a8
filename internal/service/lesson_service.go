package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avoshchina/tutorhub/internal/model"
)

// DefaultUpcomingLimit caps the upcoming-lessons summary. Display policy,
// overridable per request.
const DefaultUpcomingLimit = 4

type lessonStore interface {
	ForStudents(ctx context.Context, studentIDs []uuid.UUID) ([]*model.Lesson, error)
	Upcoming(ctx context.Context, studentIDs []uuid.UUID, now time.Time, limit int) ([]*model.Lesson, error)
}

// LessonService is the read side of bookings: calendar events scoped by
// student or parent linkage.
type LessonService struct {
	lessons lessonStore
	now     func() time.Time
}

func NewLessonService(lessons lessonStore) *LessonService {
	return &LessonService{
		lessons: lessons,
		now:     time.Now,
	}
}

// ForStudent is the single-student case of ForStudents.
func (s *LessonService) ForStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Lesson, error) {
	return s.lessons.ForStudents(ctx, []uuid.UUID{studentID})
}

func (s *LessonService) ForStudents(ctx context.Context, studentIDs []uuid.UUID) ([]*model.Lesson, error) {
	return s.lessons.ForStudents(ctx, studentIDs)
}

// Upcoming returns the next lessons for the given students, truncated to
// limit (DefaultUpcomingLimit when non-positive).
func (s *LessonService) Upcoming(ctx context.Context, studentIDs []uuid.UUID, limit int) ([]*model.Lesson, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	return s.lessons.Upcoming(ctx, studentIDs, s.now(), limit)
}
