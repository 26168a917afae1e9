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

var studentColumns = []string{
	"id", "user_id", "cgpa", "category",
	"phone", "location", "bio", "linkedin", "github", "profile_pic", "created_at",
}

// StudentRepository handles student profile database operations
type StudentRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateStudentProfile inserts the profile of a new student user
func (r *StudentRepository) CreateStudentProfile(ctx context.Context, p *models.StudentProfile) error {
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("user_id", "cgpa", "category",
			"phone", "location", "bio", "linkedin", "github", "profile_pic").
		Values(p.UserID, p.CGPA, p.Category,
			p.Phone, p.Location, p.Bio, p.LinkedIn, p.Github, p.ProfilePic).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student profile SQL")
		return fmt.Errorf("failed to build create student profile query: %w", err)
	}

	err = db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_user_id_key") {
			logger.Warn().Int64("userID", p.UserID).Msg("Attempted to create duplicate student profile")
			return apperrors.NewConflictError("Profile already exists")
		}
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error executing create student profile query")
		return fmt.Errorf("error creating student profile: %w", err)
	}
	return nil
}

// GetStudentProfile retrieves the profile owned by userID
func (r *StudentRepository) GetStudentProfile(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("student_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student profile query: %w", err)
	}

	var p models.StudentProfile
	err = db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.UserID, &p.CGPA, &p.Category,
		&p.Phone, &p.Location, &p.Bio, &p.LinkedIn, &p.Github, &p.ProfilePic, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("userID", userID).Msg("Student profile not found by user ID")
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}
	return &p, nil
}

// EnsureStudentProfile returns the profile of userID, creating an empty one if absent
func (r *StudentRepository) EnsureStudentProfile(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	_, err := db.Conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO student_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("error ensuring student profile: %w", err)
	}
	return r.GetStudentProfile(ctx, userID)
}

// UpdateStudentProfile overwrites every editable column of the profile
func (r *StudentRepository) UpdateStudentProfile(ctx context.Context, p *models.StudentProfile) error {
	sql, args, err := r.sb.Update("student_profiles").
		SetMap(map[string]interface{}{
			"cgpa":        p.CGPA,
			"category":    p.Category,
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
		return fmt.Errorf("failed to build update student profile query: %w", err)
	}

	tag, err := db.Conn(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error updating student profile")
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}
