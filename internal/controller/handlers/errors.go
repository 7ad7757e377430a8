package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/avoshchina/tutorhub/internal/apperr"
)

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// HTTPErrorHandler maps domain errors onto the wire. Soft access signals and
// booking conflicts are user-visible states, logged at info; only genuine
// server faults log at error.
func (h *Handlers) HTTPErrorHandler(err error, c echo.Context) {
	status, body := h.mapError(err)

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	} else if apperr.IsSoft(err) || status == http.StatusConflict {
		h.logger.Info("request refused",
			zap.String("path", c.Request().URL.Path),
			zap.String("code", body.Code),
		)
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	if writeErr := c.JSON(status, body); writeErr != nil {
		h.logger.Error("write error response", zap.Error(writeErr))
	}
}

func (h *Handlers) mapError(err error) (int, errorResponse) {
	var (
		httpErr *echo.HTTPError
		valErr  *apperr.ValidationError
		fldErrs validator.ValidationErrors
	)

	switch {
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, errorResponse{Code: codeForStatus(httpErr.Code), Message: msg}

	case errors.As(err, &valErr):
		return http.StatusBadRequest, errorResponse{
			Code:    apperr.CodeValidation,
			Message: "validation failed",
			Details: valErr.Fields,
		}

	case errors.As(err, &fldErrs):
		details := make(map[string]string, len(fldErrs))
		for _, fe := range fldErrs {
			details[fe.Field()] = "failed on " + fe.Tag()
		}
		return http.StatusBadRequest, errorResponse{
			Code:    apperr.CodeValidation,
			Message: "validation failed",
			Details: details,
		}

	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{
			Code:    apperr.CodeUnauthorized,
			Message: "not authenticated",
		}

	case errors.Is(err, apperr.ErrSlotNotFound):
		return http.StatusNotFound, errorResponse{
			Code:    apperr.CodeSlotNotFound,
			Message: "slot not found",
		}

	case errors.Is(err, apperr.ErrProfileNotFound):
		return http.StatusNotFound, errorResponse{
			Code:    apperr.CodeProfileNotFound,
			Message: "profile not found",
		}

	case errors.Is(err, apperr.ErrSlotAlreadyBooked):
		return http.StatusConflict, errorResponse{
			Code:    apperr.CodeSlotBooked,
			Message: "slot is no longer available, please pick another slot",
		}

	case errors.Is(err, apperr.ErrPendingApproval):
		return http.StatusForbidden, errorResponse{
			Code:    apperr.CodePendingApproval,
			Message: "account is awaiting role approval",
		}

	case errors.Is(err, apperr.ErrRoleMismatch):
		return http.StatusForbidden, errorResponse{
			Code:    apperr.CodeRoleMismatch,
			Message: "your role does not grant access to this resource",
		}

	case errors.Is(err, apperr.ErrNoLinkedStudent):
		return http.StatusForbidden, errorResponse{
			Code:    apperr.CodeNoLinkedStudent,
			Message: "no linked student for this account",
		}

	case errors.Is(err, apperr.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, errorResponse{
			Code:    apperr.CodeUpstream,
			Message: "data backend is unreachable, please try again",
		}

	default:
		return http.StatusInternalServerError, errorResponse{
			Code:    apperr.CodeInternal,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return apperr.CodeValidation
	case http.StatusUnauthorized:
		return apperr.CodeUnauthorized
	case http.StatusNotFound:
		return "NOT_FOUND"
	default:
		return apperr.CodeInternal
	}
}
