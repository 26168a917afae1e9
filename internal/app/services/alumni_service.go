package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
	"github.com/yigit/alumnilink/internal/pkg/helpers"
	"github.com/yigit/alumnilink/internal/pkg/validation"
)

// Alumni service errors
var (
	ErrInvalidDeadline        = apperrors.NewValidationError("Invalid deadline format. Use YYYY-MM-DD.")
	ErrInvalidOpportunityType = apperrors.NewValidationError("Invalid opportunity type")
	ErrNegativeMinCGPA        = apperrors.NewValidationError("min_cgpa must be at least 0")
)

// AlumniService defines the operations available to alumni, all scoped to the caller
type AlumniService interface {
	ListMyOpportunities(ctx context.Context, alumniID int64) ([]*models.Opportunity, error)
	CreateOpportunity(ctx context.Context, alumniID int64, req *dto.CreateOpportunityRequest) (*models.Opportunity, error)
	UpdateOpportunity(ctx context.Context, alumniID, opportunityID int64, req *dto.UpdateOpportunityRequest) (*models.Opportunity, error)
	DeleteOpportunity(ctx context.Context, alumniID, opportunityID int64) error
	ListApplications(ctx context.Context, alumniID int64) ([]*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, alumniID, applicationID int64, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	GetProfile(ctx context.Context, alumniID int64) (*models.UserWithProfile, error)
	UpdateProfile(ctx context.Context, alumniID int64, req *dto.UpdateAlumniProfileRequest) (*models.UserWithProfile, error)
}

// alumniServiceImpl implements AlumniService
type alumniServiceImpl struct {
	userRepo        repositories.IUserRepository
	alumniRepo      repositories.IAlumniProfileRepository
	opportunityRepo repositories.IOpportunityRepository
	applicationRepo repositories.IApplicationRepository
	tx              repositories.Transactor
	logger          zerolog.Logger
}

// NewAlumniService creates a new AlumniService
func NewAlumniService(repos *repositories.Repositories, logger zerolog.Logger) AlumniService {
	return &alumniServiceImpl{
		userRepo:        repos.UserRepository,
		alumniRepo:      repos.AlumniProfileRepository,
		opportunityRepo: repos.OpportunityRepository,
		applicationRepo: repos.ApplicationRepository,
		tx:              repos.Transactor,
		logger:          logger,
	}
}

func parseDeadline(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	deadline, err := helpers.ParseDate(*value)
	if err != nil {
		return nil, ErrInvalidDeadline
	}
	return deadline, nil
}

// ListMyOpportunities lists the caller's postings, newest first
func (s *alumniServiceImpl) ListMyOpportunities(ctx context.Context, alumniID int64) ([]*models.Opportunity, error) {
	opps, err := s.opportunityRepo.ListOpportunitiesByAlumni(ctx, alumniID)
	if err != nil {
		return nil, fmt.Errorf("error listing opportunities: %w", err)
	}
	return opps, nil
}

// CreateOpportunity publishes a new posting owned by the caller
func (s *alumniServiceImpl) CreateOpportunity(ctx context.Context, alumniID int64, req *dto.CreateOpportunityRequest) (*models.Opportunity, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.MinCGPA != nil && *req.MinCGPA < 0 {
		return nil, ErrNegativeMinCGPA
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	opp := &models.Opportunity{
		AlumniID:     alumniID,
		Type:         models.OpportunityType(req.Type),
		Title:        req.Title,
		Description:  req.Description,
		MinCGPA:      req.MinCGPA,
		Category:     req.Category,
		Company:      req.Company,
		Location:     req.Location,
		Duration:     req.Duration,
		Stipend:      req.Stipend,
		Requirements: req.Requirements,
		Deadline:     deadline,
	}

	var created *models.Opportunity
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.opportunityRepo.CreateOpportunity(ctx, opp); err != nil {
			return err
		}
		created, err = s.opportunityRepo.GetOpportunityByID(ctx, opp.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// applyOpportunityPatch merges the supplied keys of req into opp
func applyOpportunityPatch(opp *models.Opportunity, req *dto.UpdateOpportunityRequest) error {
	if req.Type.Set {
		if req.Type.Value == nil || !models.OpportunityType(*req.Type.Value).Valid() {
			return ErrInvalidOpportunityType
		}
		opp.Type = models.OpportunityType(*req.Type.Value)
	}
	if req.Title.Set {
		if req.Title.Value == nil || strings.TrimSpace(*req.Title.Value) == "" {
			return apperrors.NewValidationError("title is required")
		}
		opp.Title = *req.Title.Value
	}
	if req.Description.Set {
		if req.Description.Value == nil || strings.TrimSpace(*req.Description.Value) == "" {
			return apperrors.NewValidationError("description is required")
		}
		opp.Description = *req.Description.Value
	}
	if req.MinCGPA.Set && req.MinCGPA.Value != nil && *req.MinCGPA.Value < 0 {
		return ErrNegativeMinCGPA
	}
	if req.Deadline.Set {
		deadline, err := parseDeadline(req.Deadline.Value)
		if err != nil {
			return err
		}
		opp.Deadline = deadline
	}

	req.MinCGPA.Apply(&opp.MinCGPA)
	req.Category.Apply(&opp.Category)
	req.Company.Apply(&opp.Company)
	req.Location.Apply(&opp.Location)
	req.Duration.Apply(&opp.Duration)
	req.Stipend.Apply(&opp.Stipend)
	req.Requirements.Apply(&opp.Requirements)
	return nil
}

// UpdateOpportunity partially updates one of the caller's postings
func (s *alumniServiceImpl) UpdateOpportunity(ctx context.Context, alumniID, opportunityID int64, req *dto.UpdateOpportunityRequest) (*models.Opportunity, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var updated *models.Opportunity
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		opp, err := s.opportunityRepo.GetOwnedOpportunity(ctx, opportunityID, alumniID)
		if err != nil {
			return err
		}
		if err := applyOpportunityPatch(opp, req); err != nil {
			return err
		}
		if err := s.opportunityRepo.UpdateOpportunity(ctx, opp); err != nil {
			return err
		}
		updated, err = s.opportunityRepo.GetOpportunityByID(ctx, opportunityID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteOpportunity removes one of the caller's postings with all its applications
func (s *alumniServiceImpl) DeleteOpportunity(ctx context.Context, alumniID, opportunityID int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.opportunityRepo.DeleteOwnedOpportunity(ctx, opportunityID, alumniID)
	})
	if err != nil {
		return err
	}
	s.logger.Info().Int64("opportunityID", opportunityID).Int64("alumniID", alumniID).Msg("Opportunity deleted")
	return nil
}

// ListApplications lists applications to any of the caller's postings
func (s *alumniServiceImpl) ListApplications(ctx context.Context, alumniID int64) ([]*models.Application, error) {
	apps, err := s.applicationRepo.ListApplicationsForAlumni(ctx, alumniID)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus triages an application to one of the caller's postings
func (s *alumniServiceImpl) UpdateApplicationStatus(ctx context.Context, alumniID, applicationID int64, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	var updated *models.Application
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.applicationRepo.GetAlumniApplication(ctx, applicationID, alumniID); err != nil {
			return err
		}
		if err := validation.Struct(req); err != nil {
			return err
		}
		if err := s.applicationRepo.UpdateApplicationStatus(ctx, applicationID, models.ApplicationStatus(req.Status)); err != nil {
			return err
		}
		var err error
		updated, err = s.applicationRepo.GetApplicationByID(ctx, applicationID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", applicationID).Str("status", req.Status).Msg("Application status updated")
	return updated, nil
}

// GetProfile returns the caller with its alumni profile, creating an empty one if needed
func (s *alumniServiceImpl) GetProfile(ctx context.Context, alumniID int64) (*models.UserWithProfile, error) {
	var out *models.UserWithProfile
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetUserByID(ctx, alumniID)
		if err != nil {
			return err
		}
		profile, err := s.alumniRepo.EnsureAlumniProfile(ctx, alumniID)
		if err != nil {
			return err
		}
		out = &models.UserWithProfile{User: user, AlumniProfile: profile}
		return nil
	})
	return out, err
}

// UpdateProfile merges the supplied keys into the caller's name and alumni profile
func (s *alumniServiceImpl) UpdateProfile(ctx context.Context, alumniID int64, req *dto.UpdateAlumniProfileRequest) (*models.UserWithProfile, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var out *models.UserWithProfile
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetUserByID(ctx, alumniID)
		if err != nil {
			return err
		}

		name, err := patchName(user.Name, req.Name.Value, req.Name.Set)
		if err != nil {
			return err
		}
		if name != user.Name {
			if err := s.userRepo.UpdateUserIdentity(ctx, user.ID, name, user.Email); err != nil {
				return err
			}
			user.Name = name
		}

		profile, err := s.alumniRepo.EnsureAlumniProfile(ctx, alumniID)
		if err != nil {
			return err
		}
		req.Occupation.Apply(&profile.Occupation)
		req.Company.Apply(&profile.Company)
		req.Domain.Apply(&profile.Domain)
		req.ContactPatch.ApplyTo(&profile.Contact)
		if err := s.alumniRepo.UpdateAlumniProfile(ctx, profile); err != nil {
			return err
		}

		out = &models.UserWithProfile{User: user, AlumniProfile: profile}
		return nil
	})
	return out, err
}
