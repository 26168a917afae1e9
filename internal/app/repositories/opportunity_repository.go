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
	"github.com/yigit/alumnilink/internal/pkg/logger"
)

var newestOpportunities = []string{"o.created_at DESC", "o.id DESC"}

var opportunityColumns = []string{
	"o.id", "o.alumni_id", "o.type", "o.title", "o.description", "o.min_cgpa",
	"o.category", "o.company", "o.location", "o.duration", "o.stipend",
	"o.requirements", "o.deadline", "o.created_at", "u.name",
}

// OpportunityRepository handles database operations for opportunities
type OpportunityRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewOpportunityRepository creates a new OpportunityRepository
func NewOpportunityRepository(pool *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *OpportunityRepository) selectBase() squirrel.SelectBuilder {
	return r.sb.Select(opportunityColumns...).
		From("opportunities o").
		LeftJoin("users u ON u.id = o.alumni_id")
}

func (r *OpportunityRepository) oneQuery(where squirrel.Sqlizer) squirrel.SelectBuilder {
	return r.selectBase().Where(where).Limit(1)
}

func (r *OpportunityRepository) byAlumniQuery(alumniID int64) squirrel.SelectBuilder {
	return r.selectBase().Where(squirrel.Eq{"o.alumni_id": alumniID}).OrderBy(newestOpportunities...)
}

// browseQuery applies the conjunctive filters; a NULL min_cgpa passes the cgpa bound
func (r *OpportunityRepository) browseQuery(filter models.OpportunityFilter) squirrel.SelectBuilder {
	q := r.selectBase()
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"o.type": string(*filter.Type)})
	}
	if filter.Category != nil {
		q = q.Where(squirrel.Eq{"o.category": *filter.Category})
	}
	if filter.MaxMinCGPA != nil {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"o.min_cgpa": nil},
			squirrel.LtOrEq{"o.min_cgpa": *filter.MaxMinCGPA},
		})
	}
	return q.OrderBy(newestOpportunities...)
}

func scanOpportunity(row pgx.Row) (*models.Opportunity, error) {
	o := &models.Opportunity{}
	err := row.Scan(&o.ID, &o.AlumniID, &o.Type, &o.Title, &o.Description, &o.MinCGPA,
		&o.Category, &o.Company, &o.Location, &o.Duration, &o.Stipend,
		&o.Requirements, &o.Deadline, &o.CreatedAt, &o.AlumniName)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OpportunityRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Opportunity, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list opportunities query: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing opportunities")
		return nil, fmt.Errorf("error listing opportunities: %w", err)
	}
	defer rows.Close()

	opps := make([]*models.Opportunity, 0)
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning opportunity row: %w", err)
		}
		opps = append(opps, o)
	}
	return opps, rows.Err()
}

func (r *OpportunityRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Opportunity, error) {
	sql, args, err := r.oneQuery(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get opportunity query: %w", err)
	}

	o, err := scanOpportunity(db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("error retrieving opportunity: %w", err)
	}
	return o, nil
}

// CreateOpportunity inserts a new opportunity and fills in its ID and CreatedAt
func (r *OpportunityRepository) CreateOpportunity(ctx context.Context, o *models.Opportunity) error {
	sql, args, err := r.sb.Insert("opportunities").
		Columns("alumni_id", "type", "title", "description", "min_cgpa", "category",
			"company", "location", "duration", "stipend", "requirements", "deadline").
		Values(o.AlumniID, string(o.Type), o.Title, o.Description, o.MinCGPA, o.Category,
			o.Company, o.Location, o.Duration, o.Stipend, o.Requirements, o.Deadline).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create opportunity query: %w", err)
	}

	if err := db.Conn(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&o.ID, &o.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("alumniID", o.AlumniID).Msg("Error executing create opportunity query")
		return fmt.Errorf("error creating opportunity: %w", err)
	}

	logger.Info().Int64("opportunityID", o.ID).Int64("alumniID", o.AlumniID).Msg("Opportunity created")
	return nil
}

// GetOpportunityByID retrieves an opportunity with its author's name
func (r *OpportunityRepository) GetOpportunityByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	return r.getOne(ctx, squirrel.Eq{"o.id": id})
}

// GetOwnedOpportunity only finds the row when alumniID authored it
func (r *OpportunityRepository) GetOwnedOpportunity(ctx context.Context, id, alumniID int64) (*models.Opportunity, error) {
	return r.getOne(ctx, squirrel.Eq{"o.id": id, "o.alumni_id": alumniID})
}

// ListOpportunitiesByAlumni lists the postings of one author, newest first
func (r *OpportunityRepository) ListOpportunitiesByAlumni(ctx context.Context, alumniID int64) ([]*models.Opportunity, error) {
	return r.list(ctx, r.byAlumniQuery(alumniID))
}

// ListOpportunities lists every posting matching filter, newest first
func (r *OpportunityRepository) ListOpportunities(ctx context.Context, filter models.OpportunityFilter) ([]*models.Opportunity, error) {
	return r.list(ctx, r.browseQuery(filter))
}

// UpdateOpportunity overwrites the editable columns of an opportunity
func (r *OpportunityRepository) UpdateOpportunity(ctx context.Context, o *models.Opportunity) error {
	sql, args, err := r.sb.Update("opportunities").
		SetMap(map[string]interface{}{
			"type":         string(o.Type),
			"title":        o.Title,
			"description":  o.Description,
			"min_cgpa":     o.MinCGPA,
			"category":     o.Category,
			"company":      o.Company,
			"location":     o.Location,
			"duration":     o.Duration,
			"stipend":      o.Stipend,
			"requirements": o.Requirements,
			"deadline":     o.Deadline,
		}).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update opportunity query: %w", err)
	}

	tag, err := db.Conn(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("opportunityID", o.ID).Msg("Error updating opportunity")
		return fmt.Errorf("error updating opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}

// DeleteOwnedOpportunity removes the row and, by cascade, its applications
func (r *OpportunityRepository) DeleteOwnedOpportunity(ctx context.Context, id, alumniID int64) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM opportunities WHERE id = $1 AND alumni_id = $2`, id, alumniID)
	if err != nil {
		logger.Error().Err(err).Int64("opportunityID", id).Msg("Error deleting opportunity")
		return fmt.Errorf("error deleting opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}
