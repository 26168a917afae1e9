package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
	"github.com/yigit/alumnilink/internal/pkg/filestorage"
	"github.com/yigit/alumnilink/internal/pkg/validation"
)

// Student service errors
var (
	ErrCGPABelowMinimum     = apperrors.NewValidationError("Your CGPA does not meet the minimum requirement")
	ErrApplicationProcessed = apperrors.NewValidationError("Cannot withdraw application that has been processed")
	ErrInvalidMinCGPAFilter = apperrors.NewValidationError("Invalid min_cgpa value")
	ErrNegativeCGPA         = apperrors.NewValidationError("cgpa must be at least 0")
)

// StudentService defines the operations available to students, scoped to the caller where relevant
type StudentService interface {
	ListOpportunities(ctx context.Context, query *dto.OpportunityFilterQuery) ([]*models.Opportunity, error)
	Apply(ctx context.Context, studentID, opportunityID int64, resume *multipart.FileHeader) (*models.Application, error)
	ListMyApplications(ctx context.Context, studentID int64) ([]*models.Application, error)
	Withdraw(ctx context.Context, studentID, applicationID int64) error
	GetProfile(ctx context.Context, studentID int64) (*models.UserWithProfile, error)
	UpdateProfile(ctx context.Context, studentID int64, req *dto.UpdateStudentProfileRequest) (*models.UserWithProfile, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	userRepo        repositories.IUserRepository
	studentRepo     repositories.IStudentProfileRepository
	opportunityRepo repositories.IOpportunityRepository
	applicationRepo repositories.IApplicationRepository
	tx              repositories.Transactor
	fileStorage     filestorage.FileStorage
	logger          zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(repos *repositories.Repositories, fileStorage filestorage.FileStorage, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		userRepo:        repos.UserRepository,
		studentRepo:     repos.StudentProfileRepository,
		opportunityRepo: repos.OpportunityRepository,
		applicationRepo: repos.ApplicationRepository,
		tx:              repos.Transactor,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

// ParseOpportunityFilter turns the browse query into a repository filter.
// Blank values are ignored.
func ParseOpportunityFilter(query *dto.OpportunityFilterQuery) (models.OpportunityFilter, error) {
	var filter models.OpportunityFilter
	if query == nil {
		return filter, nil
	}
	if t := strings.TrimSpace(query.Type); t != "" {
		oppType := models.OpportunityType(t)
		filter.Type = &oppType
	}
	if c := strings.TrimSpace(query.Category); c != "" {
		filter.Category = &c
	}
	if v := strings.TrimSpace(query.MinCGPA); v != "" {
		minCGPA, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, ErrInvalidMinCGPAFilter
		}
		filter.MaxMinCGPA = &minCGPA
	}
	return filter, nil
}

// ListOpportunities browses every posting matching the query, newest first
func (s *studentServiceImpl) ListOpportunities(ctx context.Context, query *dto.OpportunityFilterQuery) ([]*models.Opportunity, error) {
	filter, err := ParseOpportunityFilter(query)
	if err != nil {
		return nil, err
	}
	opps, err := s.opportunityRepo.ListOpportunities(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing opportunities: %w", err)
	}
	return opps, nil
}

// Apply submits a pending application, storing the resume when one is given.
// The stored file is removed again when the application cannot be saved.
func (s *studentServiceImpl) Apply(ctx context.Context, studentID, opportunityID int64, resume *multipart.FileHeader) (*models.Application, error) {
	var storedFile string
	var created *models.Application

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		opp, err := s.opportunityRepo.GetOpportunityByID(ctx, opportunityID)
		if err != nil {
			return err
		}

		applied, err := s.applicationRepo.ApplicationExists(ctx, studentID, opportunityID)
		if err != nil {
			return fmt.Errorf("error checking application: %w", err)
		}
		if applied {
			return apperrors.ErrAlreadyApplied
		}

		profile, err := s.studentRepo.GetStudentProfile(ctx, studentID)
		if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
			return err
		}
		if profile != nil && profile.CGPA != nil && opp.MinCGPA != nil && *profile.CGPA < *opp.MinCGPA {
			return ErrCGPABelowMinimum
		}

		app := &models.Application{StudentID: studentID, OpportunityID: opportunityID}
		if resume != nil && resume.Filename != "" {
			storedFile, err = s.fileStorage.SaveResume(resume)
			if err != nil {
				return err
			}
			app.ResumeFile = &storedFile
		}

		if err := s.applicationRepo.CreateApplication(ctx, app); err != nil {
			return err
		}
		created, err = s.applicationRepo.GetApplicationByID(ctx, app.ID)
		return err
	})
	if err != nil {
		if storedFile != "" {
			s.removeFile(storedFile)
		}
		return nil, err
	}

	s.logger.Info().Int64("applicationID", created.ID).Int64("studentID", studentID).Msg("Application submitted")
	return created, nil
}

// ListMyApplications lists the caller's applications, newest first
func (s *studentServiceImpl) ListMyApplications(ctx context.Context, studentID int64) ([]*models.Application, error) {
	apps, err := s.applicationRepo.ListApplicationsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	return apps, nil
}

// Withdraw deletes one of the caller's pending applications. Its resume is
// removed after the commit; a failed removal is only logged.
func (s *studentServiceImpl) Withdraw(ctx context.Context, studentID, applicationID int64) error {
	var resume *string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		app, err := s.applicationRepo.GetStudentApplication(ctx, applicationID, studentID)
		if err != nil {
			return err
		}
		if app.Status != models.StatusPending {
			return ErrApplicationProcessed
		}
		resume = app.ResumeFile
		return s.applicationRepo.DeleteApplication(ctx, applicationID)
	})
	if err != nil {
		return err
	}

	if resume != nil && *resume != "" {
		s.removeFile(*resume)
	}
	return nil
}

func (s *studentServiceImpl) removeFile(name string) {
	if err := s.fileStorage.DeleteFile(name); err != nil {
		s.logger.Warn().Err(err).Str("file", name).Msg("Failed to remove resume file")
	}
}

// GetProfile returns the caller with its student profile, creating an empty one if needed
func (s *studentServiceImpl) GetProfile(ctx context.Context, studentID int64) (*models.UserWithProfile, error) {
	var out *models.UserWithProfile
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetUserByID(ctx, studentID)
		if err != nil {
			return err
		}
		profile, err := s.studentRepo.EnsureStudentProfile(ctx, studentID)
		if err != nil {
			return err
		}
		out = &models.UserWithProfile{User: user, StudentProfile: profile}
		return nil
	})
	return out, err
}

// UpdateProfile merges the supplied keys into the caller's name and student profile
func (s *studentServiceImpl) UpdateProfile(ctx context.Context, studentID int64, req *dto.UpdateStudentProfileRequest) (*models.UserWithProfile, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.CGPA.Value != nil && *req.CGPA.Value < 0 {
		return nil, ErrNegativeCGPA
	}

	var out *models.UserWithProfile
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetUserByID(ctx, studentID)
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

		profile, err := s.studentRepo.EnsureStudentProfile(ctx, studentID)
		if err != nil {
			return err
		}
		req.CGPA.Apply(&profile.CGPA)
		req.Category.Apply(&profile.Category)
		req.ContactPatch.ApplyTo(&profile.Contact)
		if err := s.studentRepo.UpdateStudentProfile(ctx, profile); err != nil {
			return err
		}

		out = &models.UserWithProfile{User: user, StudentProfile: profile}
		return nil
	})
	return out, err
}
