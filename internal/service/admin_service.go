package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avoshchina/tutorhub/internal/apperr"
	"github.com/avoshchina/tutorhub/internal/events"
	"github.com/avoshchina/tutorhub/internal/model"
)

type adminProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	SetRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.Profile, error)
	PatchDetails(ctx context.Context, id uuid.UUID, displayName *string, subjects []string) error
}

type adminLinkStore interface {
	Link(ctx context.Context, parentID, studentID uuid.UUID) error
}

// TeacherSeed describes one teacher account to promote and fill in.
type TeacherSeed struct {
	UserID      uuid.UUID
	DisplayName *string
	Subjects    []string
}

// AdminService carries the administrative operations: role approval, teacher
// seeding and parent-student linking. All of them sit behind the admin
// credential, outside normal user sessions.
type AdminService struct {
	profiles adminProfileStore
	links    adminLinkStore
	events   *events.Publisher
	logger   *zap.Logger
}

func NewAdminService(
	profiles adminProfileStore,
	links adminLinkStore,
	publisher *events.Publisher,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		profiles: profiles,
		links:    links,
		events:   publisher,
		logger:   logger,
	}
}

// ApproveRole assigns a role to a user. An empty role falls back to the
// profile's requested_role; if both are empty the request is rejected. This
// is the only transition out of the authenticated-without-role state.
func (s *AdminService) ApproveRole(ctx context.Context, userID uuid.UUID, role string) (*model.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.ErrProfileNotFound
	}

	target, ok := model.ParseRole(role)
	if !ok {
		return nil, apperr.Validation("role", "must be one of student, parent, teacher")
	}
	if target == model.RoleNone {
		target = profile.RequestedRole
	}
	if target == model.RoleNone {
		return nil, apperr.Validation("role", "no role provided and requested_role is empty")
	}

	updated, err := s.profiles.SetRole(ctx, userID, target)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrProfileNotFound
	}

	s.events.Publish(ctx, events.TypeRoleApproved, userID, map[string]any{
		"user_id": userID,
		"role":    target,
	})

	s.logger.Info("role approved",
		zap.String("user_id", userID.String()),
		zap.String("role", string(target)),
	)

	return updated, nil
}

// SeedTeachers promotes the given accounts to the teacher role and patches
// their display details where provided.
func (s *AdminService) SeedTeachers(ctx context.Context, seeds []TeacherSeed) ([]*model.Profile, error) {
	results := make([]*model.Profile, 0, len(seeds))
	for _, seed := range seeds {
		updated, err := s.profiles.SetRole(ctx, seed.UserID, model.RoleTeacher)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, apperr.ErrProfileNotFound
		}

		if seed.DisplayName != nil || seed.Subjects != nil {
			if err := s.profiles.PatchDetails(ctx, seed.UserID, seed.DisplayName, seed.Subjects); err != nil {
				return nil, err
			}
		}

		results = append(results, updated)
	}

	s.logger.Info("teachers seeded", zap.Int("count", len(results)))
	return results, nil
}

// LinkParentStudent grants a parent visibility into a student's lessons.
// Re-linking an existing pair is a no-op.
func (s *AdminService) LinkParentStudent(ctx context.Context, parentID, studentID uuid.UUID) error {
	if parentID == studentID {
		return apperr.Validation("student_id", "cannot link an account to itself")
	}

	if err := s.links.Link(ctx, parentID, studentID); err != nil {
		return err
	}

	s.events.Publish(ctx, events.TypeParentStudentLinked, parentID, map[string]any{
		"parent_id":  parentID,
		"student_id": studentID,
	})

	s.logger.Info("parent linked to student",
		zap.String("parent_id", parentID.String()),
		zap.String("student_id", studentID.String()),
	)

	return nil
}
