package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avoshchina/tutorhub/internal/apperr"
	"github.com/avoshchina/tutorhub/internal/service"
)

type approveRoleRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role"`
}

func (h *Handlers) approveRole(c echo.Context) error {
	var req approveRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("body", "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.admin.ApproveRole(c.Request().Context(), req.UserID, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

type teacherSeedRequest struct {
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	DisplayName *string   `json:"display_name"`
	Subjects    []string  `json:"subjects"`
}

type seedTeachersRequest struct {
	Teachers []teacherSeedRequest `json:"teachers" validate:"required,min=1,dive"`
}

func (h *Handlers) seedTeachers(c echo.Context) error {
	var req seedTeachersRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("body", "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	seeds := make([]service.TeacherSeed, 0, len(req.Teachers))
	for _, t := range req.Teachers {
		seeds = append(seeds, service.TeacherSeed{
			UserID:      t.UserID,
			DisplayName: t.DisplayName,
			Subjects:    t.Subjects,
		})
	}

	profiles, err := h.admin.SeedTeachers(c.Request().Context(), seeds)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profiles)
}

type seedAvailabilityRequest struct {
	TeacherID    uuid.UUID  `json:"teacher_id" validate:"required"`
	Days         *int       `json:"days"`
	SlotsPerDay  *int       `json:"slots_per_day"`
	SlotMinutes  *int       `json:"slot_minutes"`
	StartDateUTC *time.Time `json:"start_date_utc"`
}

// seedAvailability generates and inserts future open slots for a teacher.
// Absent fields take the standard window: five days, two slots a day, one
// hour each, starting tomorrow.
func (h *Handlers) seedAvailability(c echo.Context) error {
	var req seedAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("body", "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	days := 5
	if req.Days != nil {
		days = *req.Days
	}
	slotsPerDay := 2
	if req.SlotsPerDay != nil {
		slotsPerDay = *req.SlotsPerDay
	}
	slotMinutes := 60
	if req.SlotMinutes != nil {
		slotMinutes = *req.SlotMinutes
	}
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	if req.StartDateUTC != nil {
		start = req.StartDateUTC.UTC()
	}

	slots, err := h.availability.Seed(c.Request().Context(), req.TeacherID, start, days, slotsPerDay, slotMinutes)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}

type linkParentStudentRequest struct {
	ParentID  uuid.UUID `json:"parent_id" validate:"required"`
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

func (h *Handlers) linkParentStudent(c echo.Context) error {
	var req linkParentStudentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("body", "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.admin.LinkParentStudent(c.Request().Context(), req.ParentID, req.StudentID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "linked"})
}
