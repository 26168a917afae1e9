package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/alumnilink/internal/app/auth"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
	"github.com/yigit/alumnilink/internal/pkg/validation"
)

// Profile service errors
var (
	ErrInvalidProfileParams = apperrors.NewValidationError("Invalid parameters")
	ErrProfileTypeMismatch  = apperrors.NewValidationError("Profile type does not match user role")
	ErrInvalidEmail         = apperrors.NewValidationError("Invalid email format")
)

// ProfileService defines the generic profile endpoint, addressed by profile type and user id
type ProfileService interface {
	Get(ctx context.Context, callerID int64, query *dto.ProfileQuery) (*models.UserWithProfile, error)
	Update(ctx context.Context, callerID int64, query *dto.ProfileQuery, req *dto.UpdatePublicProfileRequest) (*models.UserWithProfile, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	userRepo    repositories.IUserRepository
	profiles    profileLoader
	tx          repositories.Transactor
	authService *appauth.AuthorizationService
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(repos *repositories.Repositories, authService *appauth.AuthorizationService, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		userRepo:    repos.UserRepository,
		profiles:    profileLoader{alumniRepo: repos.AlumniProfileRepository, studentRepo: repos.StudentProfileRepository},
		tx:          repos.Transactor,
		authService: authService,
		logger:      logger,
	}
}

// resolve checks the query and the access policy, then loads the target user
// with its profile, creating the profile if it is missing.
func (s *profileServiceImpl) resolve(ctx context.Context, callerID int64, query *dto.ProfileQuery) (*models.UserWithProfile, error) {
	if query == nil || query.ID <= 0 {
		return nil, ErrInvalidProfileParams
	}
	kind := models.RoleType(query.Type)
	if !kind.HasProfile() {
		return nil, ErrInvalidProfileParams
	}

	if err := s.authService.CanAccessProfile(ctx, callerID, query.ID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	if user.Role != kind {
		return nil, ErrProfileTypeMismatch
	}
	return s.profiles.attach(ctx, user, true)
}

// Get returns the addressed profile
func (s *profileServiceImpl) Get(ctx context.Context, callerID int64, query *dto.ProfileQuery) (*models.UserWithProfile, error) {
	var out *models.UserWithProfile
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.resolve(ctx, callerID, query)
		return err
	})
	return out, err
}

// Update merges the supplied keys into the addressed user and its profile
func (s *profileServiceImpl) Update(ctx context.Context, callerID int64, query *dto.ProfileQuery, req *dto.UpdatePublicProfileRequest) (*models.UserWithProfile, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var out *models.UserWithProfile
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		target, err := s.resolve(ctx, callerID, query)
		if err != nil {
			return err
		}
		user := target.User

		name, err := patchName(user.Name, req.Name.Value, req.Name.Set)
		if err != nil {
			return err
		}
		email := user.Email
		if req.Email.Set {
			if req.Email.Value == nil || !validation.Email(strings.TrimSpace(*req.Email.Value)) {
				return ErrInvalidEmail
			}
			email = strings.TrimSpace(*req.Email.Value)
		}
		if name != user.Name || email != user.Email {
			if err := s.userRepo.UpdateUserIdentity(ctx, user.ID, name, email); err != nil {
				return err
			}
			user.Name, user.Email = name, email
		}

		contact := req.Contact()
		switch {
		case target.AlumniProfile != nil:
			p := target.AlumniProfile
			contact.ApplyTo(&p.Contact)
			req.Occupation.Apply(&p.Occupation)
			req.Company.Apply(&p.Company)
			req.WorkingDomain.Apply(&p.Domain)
			err = s.profiles.alumniRepo.UpdateAlumniProfile(ctx, p)
		case target.StudentProfile != nil:
			p := target.StudentProfile
			if req.CGPA.Value != nil && *req.CGPA.Value < 0 {
				return ErrNegativeCGPA
			}
			contact.ApplyTo(&p.Contact)
			req.CGPA.Apply(&p.CGPA)
			req.Category.Apply(&p.Category)
			err = s.profiles.studentRepo.UpdateStudentProfile(ctx, p)
		}
		if err != nil {
			return err
		}

		s.logger.Info().Int64("userID", user.ID).Int64("updatedBy", callerID).Msg("Profile updated")
		out = target
		return nil
	})
	return out, err
}
