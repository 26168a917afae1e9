package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
	"github.com/yigit/alumnilink/internal/pkg/auth"
	"github.com/yigit/alumnilink/internal/pkg/validation"
)

// Auth service errors
var (
	ErrInvalidCredentials  = apperrors.NewUnauthorizedError("Invalid email or password")
	ErrCredentialsRequired = apperrors.NewValidationError("Email and password are required")
	ErrAdminSignupDisabled = apperrors.NewForbiddenError("Admin registration is disabled")
	ErrPasswordTooLong     = apperrors.NewValidationError(fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo           repositories.IUserRepository
	profiles           profileLoader
	tx                 repositories.Transactor
	jwtService         *auth.JWTService
	disableAdminSignup bool
	logger             zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	disableAdminSignup bool,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:           repos.UserRepository,
		profiles:           profileLoader{alumniRepo: repos.AlumniProfileRepository, studentRepo: repos.StudentProfileRepository},
		tx:                 repos.Transactor,
		jwtService:         jwtService,
		disableAdminSignup: disableAdminSignup,
		logger:             logger,
	}
}

// Register creates the account and, for alumni and students, its profile in
// one transaction, then issues an access token for it.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error) {
	if err := validation.Struct(req); err != nil {
		return nil, "", err
	}

	// bcrypt rejects longer input; len counts bytes, not runes
	if len(req.Password) > auth.MaxPasswordBytes {
		return nil, "", ErrPasswordTooLong
	}

	role := models.RoleType(req.Role)
	if role == models.RoleAdmin && s.disableAdminSignup {
		return nil, "", ErrAdminSignupDisabled
	}
	if req.CGPA != nil && *req.CGPA < 0 {
		return nil, "", apperrors.NewValidationError("cgpa must be at least 0")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, "", apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
			return err
		}

		switch role {
		case models.RoleAlumni:
			return s.profiles.alumniRepo.CreateAlumniProfile(ctx, &models.AlumniProfile{
				UserID:     user.ID,
				Occupation: req.Occupation,
				Company:    req.Company,
				Domain:     req.Domain,
			})
		case models.RoleStudent:
			return s.profiles.studentRepo.CreateStudentProfile(ctx, &models.StudentProfile{
				UserID:   user.ID,
				CGPA:     req.CGPA,
				Category: req.Category,
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("user creation error: %w", err)
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("User registered")
	return user, token, nil
}

// Login checks the credentials and issues an access token. An unknown email
// and a wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", ErrCredentialsRequired
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error finding user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Password mismatch")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %w", err)
	}
	return user, token, nil
}

// Me returns the authenticated user with its profile when it has one
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.UserWithProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profiles.attach(ctx, user, false)
}
