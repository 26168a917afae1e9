// Package services holds the business logic behind the HTTP handlers.
//
// Services defined in this package:
//   - AuthService: registration, login and the current user
//   - AdminService: account listing, deletion and counters
//   - AlumniService: opportunities, applications to them and the alumni profile
//   - StudentService: browsing, applying, withdrawing and the student profile
//   - ProfileService: the generic profile endpoint addressed by type and id
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

// profileLoader attaches role profiles to users
type profileLoader struct {
	alumniRepo  repositories.IAlumniProfileRepository
	studentRepo repositories.IStudentProfileRepository
}

// attach loads the profile matching the role of user. With ensure set a
// missing profile is created empty, otherwise it is simply left out.
func (l profileLoader) attach(ctx context.Context, user *models.User, ensure bool) (*models.UserWithProfile, error) {
	out := &models.UserWithProfile{User: user}
	var err error

	switch user.Role {
	case models.RoleAlumni:
		if ensure {
			out.AlumniProfile, err = l.alumniRepo.EnsureAlumniProfile(ctx, user.ID)
		} else {
			out.AlumniProfile, err = l.alumniRepo.GetAlumniProfile(ctx, user.ID)
		}
	case models.RoleStudent:
		if ensure {
			out.StudentProfile, err = l.studentRepo.EnsureStudentProfile(ctx, user.ID)
		} else {
			out.StudentProfile, err = l.studentRepo.GetStudentProfile(ctx, user.ID)
		}
	}

	if err != nil && !(errors.Is(err, apperrors.ErrProfileNotFound) && !ensure) {
		return nil, err
	}
	return out, nil
}

// patchName applies an optional name change; a present name may not be blank
func patchName(current string, value *string, set bool) (string, error) {
	if !set {
		return current, nil
	}
	if value == nil || strings.TrimSpace(*value) == "" {
		return "", apperrors.NewValidationError("name is required")
	}
	return *value, nil
}
