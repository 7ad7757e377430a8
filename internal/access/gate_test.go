package access

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avoshchina/tutorhub/internal/apperr"
	"github.com/avoshchina/tutorhub/internal/model"
)

type stubProfiles struct {
	getByID func(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

func (s *stubProfiles) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return s.getByID(ctx, id)
}

type stubLinks struct {
	studentIDs func(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error)
}

func (s *stubLinks) StudentIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error) {
	return s.studentIDs(ctx, parentID)
}

func newTestGate(profiles *stubProfiles, links *stubLinks) *Gate {
	return NewGate(NewTokenVerifier(testSecret), profiles, links, zap.NewNop())
}

func TestGateAuthenticate(t *testing.T) {
	userID := uuid.New()
	expiry := time.Now().Add(time.Hour)

	t.Run("loads the role from the profile store", func(t *testing.T) {
		profiles := &stubProfiles{
			getByID: func(_ context.Context, id uuid.UUID) (*model.Profile, error) {
				assert.Equal(t, userID, id)
				return &model.Profile{ID: id, Role: model.RoleParent}, nil
			},
		}
		gate := newTestGate(profiles, &stubLinks{})

		session, err := gate.Authenticate(context.Background(), signToken(t, testSecret, userID.String(), expiry))
		require.NoError(t, err)
		assert.Equal(t, userID, session.UserID)
		assert.Equal(t, model.RoleParent, session.Role)
		require.NotNil(t, session.Profile)
	})

	t.Run("a valid token without a profile row authenticates without a role", func(t *testing.T) {
		profiles := &stubProfiles{
			getByID: func(context.Context, uuid.UUID) (*model.Profile, error) {
				return nil, nil
			},
		}
		gate := newTestGate(profiles, &stubLinks{})

		session, err := gate.Authenticate(context.Background(), signToken(t, testSecret, userID.String(), expiry))
		require.NoError(t, err)
		assert.Equal(t, model.RoleNone, session.Role)
		assert.Nil(t, session.Profile)
	})

	t.Run("a bad token never reaches the profile store", func(t *testing.T) {
		profiles := &stubProfiles{
			getByID: func(context.Context, uuid.UUID) (*model.Profile, error) {
				t.Fatal("profile store must not be consulted for an unverifiable token")
				return nil, nil
			},
		}
		gate := newTestGate(profiles, &stubLinks{})

		_, err := gate.Authenticate(context.Background(), "bogus")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
}

func TestGateRequireDashboard(t *testing.T) {
	cases := []struct {
		name      string
		role      model.Role
		dashboard model.Role
		want      error
	}{
		{"no role yet", model.RoleNone, model.RoleParent, apperr.ErrPendingApproval},
		{"matching role", model.RoleParent, model.RoleParent, nil},
		{"student on parent dashboard", model.RoleStudent, model.RoleParent, apperr.ErrRoleMismatch},
		{"teacher on student dashboard", model.RoleTeacher, model.RoleStudent, apperr.ErrRoleMismatch},
	}

	gate := newTestGate(&stubProfiles{}, &stubLinks{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := gate.RequireDashboard(&Session{Role: tc.role}, tc.dashboard)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestGateAuthorizeBooking(t *testing.T) {
	parentID := uuid.New()
	studentID := uuid.New()

	parentSession := func() *Session {
		return &Session{UserID: parentID, Role: model.RoleParent}
	}

	t.Run("allows a linked student", func(t *testing.T) {
		links := &stubLinks{
			studentIDs: func(context.Context, uuid.UUID) ([]uuid.UUID, error) {
				return []uuid.UUID{uuid.New(), studentID}, nil
			},
		}
		gate := newTestGate(&stubProfiles{}, links)

		assert.NoError(t, gate.AuthorizeBooking(context.Background(), parentSession(), studentID))
	})

	t.Run("rejects a non-parent role", func(t *testing.T) {
		gate := newTestGate(&stubProfiles{}, &stubLinks{})

		err := gate.AuthorizeBooking(context.Background(), &Session{UserID: parentID, Role: model.RoleStudent}, studentID)
		assert.ErrorIs(t, err, apperr.ErrRoleMismatch)
	})

	t.Run("rejects before approval", func(t *testing.T) {
		gate := newTestGate(&stubProfiles{}, &stubLinks{})

		err := gate.AuthorizeBooking(context.Background(), &Session{UserID: parentID, Role: model.RoleNone}, studentID)
		assert.ErrorIs(t, err, apperr.ErrPendingApproval)
	})

	t.Run("rejects a parent with no links", func(t *testing.T) {
		links := &stubLinks{
			studentIDs: func(context.Context, uuid.UUID) ([]uuid.UUID, error) {
				return nil, nil
			},
		}
		gate := newTestGate(&stubProfiles{}, links)

		err := gate.AuthorizeBooking(context.Background(), parentSession(), studentID)
		assert.ErrorIs(t, err, apperr.ErrNoLinkedStudent)
	})

	t.Run("rejects a student linked to someone else", func(t *testing.T) {
		links := &stubLinks{
			studentIDs: func(context.Context, uuid.UUID) ([]uuid.UUID, error) {
				return []uuid.UUID{uuid.New()}, nil
			},
		}
		gate := newTestGate(&stubProfiles{}, links)

		err := gate.AuthorizeBooking(context.Background(), parentSession(), studentID)
		assert.ErrorIs(t, err, apperr.ErrNoLinkedStudent)
	})
}

func TestGateLinkedStudents(t *testing.T) {
	t.Run("non-parent roles have no linked students", func(t *testing.T) {
		links := &stubLinks{
			studentIDs: func(context.Context, uuid.UUID) ([]uuid.UUID, error) {
				t.Fatal("link store must not be consulted for non-parents")
				return nil, nil
			},
		}
		gate := newTestGate(&stubProfiles{}, links)

		got, err := gate.LinkedStudents(context.Background(), &Session{Role: model.RoleStudent})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
