package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is an administratively assigned capability tag. It is never
// self-assigned: signup only records RequestedRole, which stays advisory
// until an admin approves it.
type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
	RoleNone    Role = "" // authenticated but not yet approved
)

// ParseRole maps a stored role string onto the closed enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleParent, RoleTeacher:
		return Role(s), true
	case RoleNone:
		return RoleNone, true
	}
	return RoleNone, false
}

type Profile struct {
	ID            uuid.UUID `json:"id"`
	Email         *string   `json:"email"`
	DisplayName   *string   `json:"display_name"`
	Subjects      []string  `json:"subjects"`
	Role          Role      `json:"role"`
	RequestedRole Role      `json:"requested_role"`
	CreatedAt     time.Time `json:"created_at"`
}
