// Package access implements the role gate over identity sessions.
//
// A session moves through three states: anonymous, authenticated without a
// role, and authenticated with an assigned role. Credential verification
// moves it out of anonymous; only the administrative approve-role operation
// moves it further. The role is always read from the profile store, never
// from the token.
package access

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avoshchina/tutorhub/internal/apperr"
	"github.com/avoshchina/tutorhub/internal/model"
)

// Session is the authenticated identity attached to a request. Role is
// RoleNone until an admin approves one.
type Session struct {
	UserID  uuid.UUID
	Role    model.Role
	Profile *model.Profile // nil when no profile row exists yet
}

type profileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

type linkStore interface {
	StudentIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error)
}

type Gate struct {
	verifier *TokenVerifier
	profiles profileStore
	links    linkStore
	logger   *zap.Logger
}

func NewGate(verifier *TokenVerifier, profiles profileStore, links linkStore, logger *zap.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		profiles: profiles,
		links:    links,
		logger:   logger,
	}
}

// Authenticate verifies the bearer token and loads the identity's role.
// A verifiable token without a profile row still authenticates, just without
// a role.
func (g *Gate) Authenticate(ctx context.Context, rawToken string) (*Session, error) {
	userID, err := g.verifier.Verify(rawToken)
	if err != nil {
		return nil, err
	}

	profile, err := g.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	session := &Session{UserID: userID, Profile: profile}
	if profile != nil {
		session.Role = profile.Role
	}

	return session, nil
}

// RequireDashboard decides whether the session may reach a dashboard tagged
// for the given role. Both rejections are soft signals: the user either waits
// for approval or navigates to their own dashboard.
func (g *Gate) RequireDashboard(session *Session, dashboard model.Role) error {
	switch session.Role {
	case model.RoleNone:
		return apperr.ErrPendingApproval
	case dashboard:
		return nil
	default:
		return apperr.ErrRoleMismatch
	}
}

// RequireAnyRole admits any session whose role has been assigned.
func (g *Gate) RequireAnyRole(session *Session) error {
	if session.Role == model.RoleNone {
		return apperr.ErrPendingApproval
	}
	return nil
}

// LinkedStudents returns the students a parent session may act for.
func (g *Gate) LinkedStudents(ctx context.Context, session *Session) ([]uuid.UUID, error) {
	if session.Role != model.RoleParent {
		return nil, nil
	}
	return g.links.StudentIDs(ctx, session.UserID)
}

// AuthorizeBooking checks that the session is a parent linked to the student
// it wants to book for. It never mutates anything; a rejection here must
// leave slots and lessons untouched.
func (g *Gate) AuthorizeBooking(ctx context.Context, session *Session, studentID uuid.UUID) error {
	if err := g.RequireDashboard(session, model.RoleParent); err != nil {
		return err
	}

	linked, err := g.links.StudentIDs(ctx, session.UserID)
	if err != nil {
		return err
	}
	if len(linked) == 0 {
		return apperr.ErrNoLinkedStudent
	}
	for _, id := range linked {
		if id == studentID {
			return nil
		}
	}

	g.logger.Info("booking refused for unlinked student",
		zap.String("parent_id", session.UserID.String()),
		zap.String("student_id", studentID.String()),
	)
	return apperr.ErrNoLinkedStudent
}
