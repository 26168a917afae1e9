package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
	"github.com/yigit/alumnilink/internal/pkg/logger"
)

// ProfilePolicy decides who may read and edit profiles through the generic profile endpoint
type ProfilePolicy string

const (
	// ProfileAccessOpen lets any authenticated caller read and edit any profile
	ProfileAccessOpen ProfilePolicy = "open"
	// ProfileAccessSelfOrAdmin restricts the endpoint to the profile owner and admins
	ProfileAccessSelfOrAdmin ProfilePolicy = "self_or_admin"
)

var ErrProfileAccessDenied = apperrors.NewForbiddenError("You can only access your own profile")

// RoleAccessError is the forbidden error of a role gate, e.g. "Alumni access required"
func RoleAccessError(role models.RoleType) error {
	name := string(role)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return apperrors.NewForbiddenError(name + " access required")
}

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	userRepo      repositories.IUserRepository
	profilePolicy ProfilePolicy
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.IUserRepository, profilePolicy ProfilePolicy) *AuthorizationService {
	if profilePolicy == "" {
		profilePolicy = ProfileAccessOpen
	}
	return &AuthorizationService{
		userRepo:      userRepo,
		profilePolicy: profilePolicy,
	}
}

// RequireRole resolves userID and checks it holds role. A user that no longer
// exists fails the same way as a role mismatch.
func (s *AuthorizationService) RequireRole(ctx context.Context, userID int64, role models.RoleType) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, RoleAccessError(role)
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in RequireRole")
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user.Role != role {
		return nil, RoleAccessError(role)
	}
	return user, nil
}

// CanAccessProfile applies the profile policy to callerID acting on targetID
func (s *AuthorizationService) CanAccessProfile(ctx context.Context, callerID, targetID int64) error {
	if s.profilePolicy != ProfileAccessSelfOrAdmin || callerID == targetID {
		return nil
	}

	caller, err := s.userRepo.GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return ErrProfileAccessDenied
		}
		return fmt.Errorf("failed to resolve caller: %w", err)
	}
	if caller.Role != models.RoleAdmin {
		logger.Warn().Int64("callerID", callerID).Int64("targetID", targetID).Msg("Profile access denied")
		return ErrProfileAccessDenied
	}
	return nil
}
