package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/db"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
	"github.com/yigit/alumnilink/internal/pkg/dberrors"
	"github.com/yigit/alumnilink/internal/pkg/logger"
)

var alumniColumns = []string{
	"id", "user_id", "occupation", "company", "domain",
	"phone", "location", "bio", "linkedin", "github", "profile_pic", "created_at",
}

// AlumniRepository handles alumni profile database operations
type AlumniRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewAlumniRepository creates a new AlumniRepository
func NewAlumniRepository(pool *pgxpool.Pool) *AlumniRepository {
	return &AlumniRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAlumniProfile inserts the profile of a new alumni user
func (r *AlumniRepository) CreateAlumniProfile(ctx context.Context, p *models.AlumniProfile) error {
	sql, args, err := r.sb.Insert("alumni_profiles").
		Columns("user_id", "occupation", "company", "domain",
			"phone", "location", "bio", "linkedin", "github", "profile_pic").
		Values(p.UserID, p.Occupation, p.Company, p.Domain,
			p.Phone, p.Location, p.Bio, p.LinkedIn, p.Github, p.ProfilePic).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create alumni profile query: %w", err)
	}

	err = db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "alumni_profiles_user_id_key") {
			return apperrors.NewConflictError("Profile already exists")
		}
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error executing create alumni profile query")
		return fmt.Errorf("error creating alumni profile: %w", err)
	}
	return nil
}

// GetAlumniProfile retrieves the profile owned by userID
func (r *AlumniRepository) GetAlumniProfile(ctx context.Context, userID int64) (*models.AlumniProfile, error) {
	sql, args, err := r.sb.Select(alumniColumns...).
		From("alumni_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get alumni profile query: %w", err)
	}

	var p models.AlumniProfile
	err = db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.UserID, &p.Occupation, &p.Company, &p.Domain,
		&p.Phone, &p.Location, &p.Bio, &p.LinkedIn, &p.Github, &p.ProfilePic, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving alumni profile: %w", err)
	}
	return &p, nil
}

// EnsureAlumniProfile returns the profile of userID, creating an empty one if absent
func (r *AlumniRepository) EnsureAlumniProfile(ctx context.Context, userID int64) (*models.AlumniProfile, error) {
	_, err := db.Conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO alumni_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("error ensuring alumni profile: %w", err)
	}
	return r.GetAlumniProfile(ctx, userID)
}

// UpdateAlumniProfile overwrites every editable column of the profile
func (r *AlumniRepository) UpdateAlumniProfile(ctx context.Context, p *models.AlumniProfile) error {
	sql, args, err := r.sb.Update("alumni_profiles").
		SetMap(map[string]interface{}{
			"occupation":  p.Occupation,
			"company":     p.Company,
			"domain":      p.Domain,
			"phone":       p.Phone,
			"location":    p.Location,
			"bio":         p.Bio,
			"linkedin":    p.LinkedIn,
			"github":      p.Github,
			"profile_pic": p.ProfilePic,
		}).
		Where(squirrel.Eq{"user_id": p.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update alumni profile query: %w", err)
	}

	tag, err := db.Conn(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error updating alumni profile")
		return fmt.Errorf("error updating alumni profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}
