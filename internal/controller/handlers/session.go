package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avoshchina/tutorhub/internal/model"
)

type meResponse struct {
	UserID      string   `json:"user_id"`
	Role        string   `json:"role,omitempty"`
	State       string   `json:"state"`
	DisplayName *string  `json:"display_name,omitempty"`
	Students    []string `json:"linked_student_ids,omitempty"`
}

// me reports the session's gate state so the client can route to the right
// dashboard without guessing.
func (h *Handlers) me(c echo.Context) error {
	session := sessionFrom(c)

	resp := meResponse{
		UserID: session.UserID.String(),
		Role:   string(session.Role),
		State:  "active",
	}
	if session.Role == model.RoleNone {
		resp.State = "pending_approval"
	}
	if session.Profile != nil {
		resp.DisplayName = session.Profile.DisplayName
	}

	if session.Role == model.RoleParent {
		linked, err := h.gate.LinkedStudents(c.Request().Context(), session)
		if err != nil {
			return err
		}
		for _, id := range linked {
			resp.Students = append(resp.Students, id.String())
		}
	}

	return c.JSON(http.StatusOK, resp)
}
