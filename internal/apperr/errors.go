// Package apperr defines the error taxonomy shared by services and the HTTP
// layer. Hard errors are sentinels matched with errors.Is; soft access
// signals are user-correctable states, not system failures, and must not be
// logged as errors.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Machine codes surfaced in error responses.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeSlotNotFound     = "SLOT_NOT_FOUND"
	CodeProfileNotFound  = "PROFILE_NOT_FOUND"
	CodeSlotBooked       = "SLOT_ALREADY_BOOKED"
	CodePendingApproval  = "PENDING_APPROVAL"
	CodeRoleMismatch     = "ROLE_MISMATCH"
	CodeNoLinkedStudent  = "NO_LINKED_STUDENT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeUpstream         = "UPSTREAM_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

var (
	// ErrSlotNotFound: the referenced slot does not exist.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotAlreadyBooked: the booking transaction observed is_booked = true.
	// Callers must not retry automatically; the user should refresh
	// availability and pick another slot.
	ErrSlotAlreadyBooked = errors.New("slot already booked")

	// ErrProfileNotFound: no profile row for the given user ID.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrUnauthorized: missing or unverifiable credential.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrUpstreamUnavailable: the persistence or identity backend is
	// unreachable. Surfaced as a generic data-load failure; no automatic
	// retry.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// Soft access signals. These describe a state the user can correct, not
	// a fault in the system.
	ErrPendingApproval = errors.New("account pending role approval")
	ErrRoleMismatch    = errors.New("role does not grant access to this dashboard")
	ErrNoLinkedStudent = errors.New("no student linked to this parent account")
)

// IsSoft reports whether err is a user-correctable access signal rather than
// a system failure.
func IsSoft(err error) bool {
	return errors.Is(err, ErrPendingApproval) ||
		errors.Is(err, ErrRoleMismatch) ||
		errors.Is(err, ErrNoLinkedStudent)
}

// ValidationError rejects malformed input before any persistence attempt.
// Field messages are surfaced to the caller verbatim.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validation builds a single-field validation error.
func Validation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
