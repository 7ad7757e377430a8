package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoshchina/tutorhub/internal/model"
	"github.com/avoshchina/tutorhub/internal/repository/base"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, email, display_name, subjects, role, requested_role, created_at`

var errNoRowsAffected = errors.New("no rows affected")

// GetByID returns a profile or nil if it does not exist.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1
	`

	profile, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, base.WrapErr("get profile by id", err)
	}
	return profile, nil
}

// SetRole assigns a role to a profile. This is the only place a role is ever
// written; it overwrites any previous assignment.
func (r *ProfileRepository) SetRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.Profile, error) {
	query := `
		UPDATE profiles
		SET role = $1
		WHERE id = $2
		RETURNING ` + profileColumns + `
	`

	profile, err := r.scanOne(r.pool.QueryRow(ctx, query, string(role), id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, base.WrapErr("set profile role", err)
	}
	return profile, nil
}

// PatchDetails updates display name and subjects where provided, leaving
// absent fields untouched.
func (r *ProfileRepository) PatchDetails(ctx context.Context, id uuid.UUID, displayName *string, subjects []string) error {
	query := `
		UPDATE profiles
		SET display_name = COALESCE($1, display_name),
		    subjects     = COALESCE($2, subjects)
		WHERE id = $3
	`

	tag, err := r.pool.Exec(ctx, query, displayName, subjects, id)
	if err != nil {
		return base.WrapErr("patch profile", err)
	}
	if tag.RowsAffected() == 0 {
		return base.WrapErr("patch profile", errNoRowsAffected)
	}
	return nil
}

func (r *ProfileRepository) scanOne(row interface{ Scan(...any) error }) (*model.Profile, error) {
	var (
		profile   model.Profile
		role      *string
		requested *string
	)
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.DisplayName,
		&profile.Subjects,
		&role,
		&requested,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if role != nil {
		profile.Role, _ = model.ParseRole(*role)
	}
	if requested != nil {
		profile.RequestedRole, _ = model.ParseRole(*requested)
	}
	return &profile, nil
}
