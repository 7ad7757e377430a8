package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avoshchina/tutorhub/internal/apperr"
)

type createBookingRequest struct {
	SlotID    uuid.UUID `json:"slot_id" validate:"required"`
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

// createBooking runs the parent booking flow: gate first, then the atomic
// slot-to-lesson transition. A lost race returns 409 and the client must ask
// the user to refresh availability rather than retry.
func (h *Handlers) createBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("body", "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session := sessionFrom(c)
	ctx := c.Request().Context()

	if err := h.gate.AuthorizeBooking(ctx, session, req.StudentID); err != nil {
		return err
	}

	lesson, err := h.booking.Book(ctx, req.SlotID, req.StudentID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, lesson)
}
