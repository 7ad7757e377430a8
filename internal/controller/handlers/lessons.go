package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avoshchina/tutorhub/internal/access"
	"github.com/avoshchina/tutorhub/internal/apperr"
	"github.com/avoshchina/tutorhub/internal/calendar"
	"github.com/avoshchina/tutorhub/internal/model"
)

// studentScope resolves which students' lessons the session may read: a
// student sees only itself, a parent sees its linked students.
func (h *Handlers) studentScope(c echo.Context, session *access.Session) ([]uuid.UUID, error) {
	requested := c.QueryParam("student_id")

	switch session.Role {
	case model.RoleStudent:
		if requested != "" && requested != session.UserID.String() {
			return nil, apperr.ErrRoleMismatch
		}
		return []uuid.UUID{session.UserID}, nil

	case model.RoleParent:
		linked, err := h.gate.LinkedStudents(c.Request().Context(), session)
		if err != nil {
			return nil, err
		}
		if requested == "" {
			return linked, nil
		}
		studentID, err := uuid.Parse(requested)
		if err != nil {
			return nil, apperr.Validation("student_id", "must be a valid UUID")
		}
		for _, id := range linked {
			if id == studentID {
				return []uuid.UUID{studentID}, nil
			}
		}
		return nil, apperr.ErrNoLinkedStudent

	case model.RoleNone:
		return nil, apperr.ErrPendingApproval

	default:
		return nil, apperr.ErrRoleMismatch
	}
}

func (h *Handlers) listLessons(c echo.Context) error {
	session := sessionFrom(c)
	scope, err := h.studentScope(c, session)
	if err != nil {
		return err
	}

	lessons, err := h.lessons.ForStudents(c.Request().Context(), scope)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"lessons": lessons})
}

func (h *Handlers) upcomingLessons(c echo.Context) error {
	session := sessionFrom(c)
	scope, err := h.studentScope(c, session)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("limit", "must be an integer")
		}
	}

	lessons, err := h.lessons.Upcoming(c.Request().Context(), scope, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"lessons": lessons})
}

// weekCalendar renders the session's week as a PNG: lessons for students and
// parents, open availability for teachers.
func (h *Handlers) weekCalendar(c echo.Context) error {
	session := sessionFrom(c)
	ctx := c.Request().Context()

	weekStart := time.Now().UTC()
	if raw := c.QueryParam("week_start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				return apperr.Validation("week_start", "must be a date (2006-01-02) or RFC3339 timestamp")
			}
		}
		weekStart = parsed.UTC()
	}

	var (
		lessons []*model.Lesson
		slots   []*model.AvailabilitySlot
	)

	if session.Role == model.RoleTeacher {
		var err error
		slots, err = h.booking.OpenSlots(ctx, session.UserID, weekStart.AddDate(0, 0, -7))
		if err != nil {
			return err
		}
	} else {
		scope, err := h.studentScope(c, session)
		if err != nil {
			return err
		}
		lessons, err = h.lessons.ForStudents(ctx, scope)
		if err != nil {
			return err
		}
	}

	img, err := calendar.RenderWeek(weekStart, lessons, slots)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", img)
}
