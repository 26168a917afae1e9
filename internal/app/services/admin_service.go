package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

var ErrSelfDelete = apperrors.NewForbiddenError("Cannot delete your own account")

// AdminService defines the interface for account administration
type AdminService interface {
	ListUsers(ctx context.Context) ([]*models.UserWithProfile, error)
	DeleteUser(ctx context.Context, callerID, userID int64) error
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	userRepo repositories.IUserRepository
	profiles profileLoader
	tx       repositories.Transactor
	logger   zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(repos *repositories.Repositories, logger zerolog.Logger) AdminService {
	return &adminServiceImpl{
		userRepo: repos.UserRepository,
		profiles: profileLoader{alumniRepo: repos.AlumniProfileRepository, studentRepo: repos.StudentProfileRepository},
		tx:       repos.Transactor,
		logger:   logger,
	}
}

// ListUsers returns every user ordered by id, each with its profile if any
func (s *adminServiceImpl) ListUsers(ctx context.Context) ([]*models.UserWithProfile, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	out := make([]*models.UserWithProfile, 0, len(users))
	for _, u := range users {
		withProfile, err := s.profiles.attach(ctx, u, false)
		if err != nil {
			return nil, err
		}
		out = append(out, withProfile)
	}
	return out, nil
}

// DeleteUser removes an account other than the caller's. Its profile goes
// with it; opportunities and applications it owns are kept.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, callerID, userID int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
			return err
		}
		if userID == callerID {
			return ErrSelfDelete
		}
		if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
			return err
		}
		s.logger.Info().Int64("userID", userID).Int64("deletedBy", callerID).Msg("User deleted")
		return nil
	})
}

// Stats counts users in total and per role
func (s *adminServiceImpl) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	count := func(role *models.RoleType) (int64, error) {
		n, err := s.userRepo.CountUsers(ctx, role)
		if err != nil {
			return 0, fmt.Errorf("error counting users: %w", err)
		}
		return n, nil
	}

	var stats dto.StatsResponse
	var err error
	if stats.TotalUsers, err = count(nil); err != nil {
		return nil, err
	}
	admin, alumni, student := models.RoleAdmin, models.RoleAlumni, models.RoleStudent
	if stats.AdminCount, err = count(&admin); err != nil {
		return nil, err
	}
	if stats.AlumniCount, err = count(&alumni); err != nil {
		return nil, err
	}
	if stats.StudentCount, err = count(&student); err != nil {
		return nil, err
	}
	return &stats, nil
}
