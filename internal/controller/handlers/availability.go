package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avoshchina/tutorhub/internal/apperr"
)

// teacherSlots lists a teacher's open slots from the not_before cutoff on
// (default: now). Any assigned role may browse availability.
func (h *Handlers) teacherSlots(c echo.Context) error {
	session := sessionFrom(c)
	if err := h.gate.RequireAnyRole(session); err != nil {
		return err
	}

	teacherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("id", "must be a valid UUID")
	}

	notBefore := time.Now().UTC()
	if raw := c.QueryParam("not_before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperr.Validation("not_before", "must be an RFC3339 timestamp")
		}
		notBefore = parsed.UTC()
	}

	slots, err := h.booking.OpenSlots(c.Request().Context(), teacherID, notBefore)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}
