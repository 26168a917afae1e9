package repositories

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

const applicationUniqueConstraint = "applications_student_opportunity_key"

var applicationColumns = []string{
	"a.id", "a.student_id", "a.opportunity_id", "a.status", "a.resume_file", "a.applied_at",
	"u.name", "o.title",
}

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ApplicationRepository) selectBase() squirrel.SelectBuilder {
	return r.sb.Select(applicationColumns...).
		From("applications a").
		LeftJoin("users u ON u.id = a.student_id").
		LeftJoin("opportunities o ON o.id = a.opportunity_id")
}

func (r *ApplicationRepository) oneQuery(where squirrel.Sqlizer) squirrel.SelectBuilder {
	return r.selectBase().Where(where).Limit(1)
}

func (r *ApplicationRepository) listQuery(where squirrel.Sqlizer) squirrel.SelectBuilder {
	return r.selectBase().Where(where).OrderBy("a.applied_at DESC", "a.id DESC")
}

// alumniScope matches applications to opportunities authored by alumniID
func alumniScope(alumniID int64) squirrel.Eq {
	return squirrel.Eq{"o.alumni_id": alumniID}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	a := &models.Application{}
	err := row.Scan(&a.ID, &a.StudentID, &a.OpportunityID, &a.Status, &a.ResumeFile, &a.AppliedAt,
		&a.StudentName, &a.OpportunityTitle)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ApplicationRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Application, error) {
	sql, args, err := r.oneQuery(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	a, err := scanApplication(db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.Application, error) {
	sql, args, err := r.listQuery(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing applications")
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*models.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// CreateApplication inserts a pending application and fills in ID, Status and AppliedAt
func (r *ApplicationRepository) CreateApplication(ctx context.Context, a *models.Application) error {
	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "opportunity_id", "resume_file").
		Values(a.StudentID, a.OpportunityID, a.ResumeFile).
		Suffix("RETURNING id, status, applied_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	err = db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&a.ID, &a.Status, &a.AppliedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, applicationUniqueConstraint) {
			return apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).
			Int64("studentID", a.StudentID).
			Int64("opportunityID", a.OpportunityID).
			Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// ApplicationExists reports whether studentID already applied to opportunityID
func (r *ApplicationRepository) ApplicationExists(ctx context.Context, studentID, opportunityID int64) (bool, error) {
	var exists bool
	err := db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1 AND opportunity_id = $2)`,
		studentID, opportunityID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application: %w", err)
	}
	return exists, nil
}

// GetApplicationByID retrieves an application with its display names
func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	return r.getOne(ctx, squirrel.Eq{"a.id": id})
}

// GetStudentApplication only finds the row when studentID submitted it
func (r *ApplicationRepository) GetStudentApplication(ctx context.Context, id, studentID int64) (*models.Application, error) {
	return r.getOne(ctx, squirrel.Eq{"a.id": id, "a.student_id": studentID})
}

// GetAlumniApplication finds an application to an opportunity authored by alumniID
func (r *ApplicationRepository) GetAlumniApplication(ctx context.Context, id, alumniID int64) (*models.Application, error) {
	return r.getOne(ctx, squirrel.And{squirrel.Eq{"a.id": id}, alumniScope(alumniID)})
}

// ListApplicationsByStudent lists the applications of one student, newest first
func (r *ApplicationRepository) ListApplicationsByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	return r.list(ctx, squirrel.Eq{"a.student_id": studentID})
}

// ListApplicationsForAlumni lists applications to every opportunity of alumniID
func (r *ApplicationRepository) ListApplicationsForAlumni(ctx context.Context, alumniID int64) ([]*models.Application, error) {
	return r.list(ctx, alumniScope(alumniID))
}

// UpdateApplicationStatus sets the status of an application
func (r *ApplicationRepository) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error updating application status")
		return fmt.Errorf("error updating application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// DeleteApplication removes an application
func (r *ApplicationRepository) DeleteApplication(ctx context.Context, id int64) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
