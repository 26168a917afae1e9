package repositories

import (
	"context"

	"github.com/yigit/alumnilink/internal/app/models"
)

// IUserRepository defines operations on the users table
type IUserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUserIdentity(ctx context.Context, id int64, name, email string) error
	DeleteUser(ctx context.Context, id int64) error
	// CountUsers counts users of role, or all users when role is nil
	CountUsers(ctx context.Context, role *models.RoleType) (int64, error)
}

// IAlumniProfileRepository defines operations on the alumni_profiles table
type IAlumniProfileRepository interface {
	CreateAlumniProfile(ctx context.Context, profile *models.AlumniProfile) error
	GetAlumniProfile(ctx context.Context, userID int64) (*models.AlumniProfile, error)
	// EnsureAlumniProfile returns the profile of userID, creating an empty one if absent
	EnsureAlumniProfile(ctx context.Context, userID int64) (*models.AlumniProfile, error)
	UpdateAlumniProfile(ctx context.Context, profile *models.AlumniProfile) error
}

// IStudentProfileRepository defines operations on the student_profiles table
type IStudentProfileRepository interface {
	CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error
	GetStudentProfile(ctx context.Context, userID int64) (*models.StudentProfile, error)
	// EnsureStudentProfile returns the profile of userID, creating an empty one if absent
	EnsureStudentProfile(ctx context.Context, userID int64) (*models.StudentProfile, error)
	UpdateStudentProfile(ctx context.Context, profile *models.StudentProfile) error
}

// IOpportunityRepository defines operations on the opportunities table
type IOpportunityRepository interface {
	CreateOpportunity(ctx context.Context, opp *models.Opportunity) error
	GetOpportunityByID(ctx context.Context, id int64) (*models.Opportunity, error)
	// GetOwnedOpportunity only finds the row when alumniID authored it
	GetOwnedOpportunity(ctx context.Context, id, alumniID int64) (*models.Opportunity, error)
	ListOpportunitiesByAlumni(ctx context.Context, alumniID int64) ([]*models.Opportunity, error)
	ListOpportunities(ctx context.Context, filter models.OpportunityFilter) ([]*models.Opportunity, error)
	UpdateOpportunity(ctx context.Context, opp *models.Opportunity) error
	// DeleteOwnedOpportunity removes the row and, by cascade, its applications
	DeleteOwnedOpportunity(ctx context.Context, id, alumniID int64) error
}

// IApplicationRepository defines operations on the applications table
type IApplicationRepository interface {
	CreateApplication(ctx context.Context, app *models.Application) error
	ApplicationExists(ctx context.Context, studentID, opportunityID int64) (bool, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	GetStudentApplication(ctx context.Context, id, studentID int64) (*models.Application, error)
	// GetAlumniApplication finds an application to an opportunity authored by alumniID
	GetAlumniApplication(ctx context.Context, id, alumniID int64) (*models.Application, error)
	ListApplicationsByStudent(ctx context.Context, studentID int64) ([]*models.Application, error)
	ListApplicationsForAlumni(ctx context.Context, alumniID int64) ([]*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	DeleteApplication(ctx context.Context, id int64) error
}

// Transactor runs fn in a single unit of work; repositories called with the
// ctx passed to fn take part in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           IUserRepository
	AlumniProfileRepository  IAlumniProfileRepository
	StudentProfileRepository IStudentProfileRepository
	OpportunityRepository    IOpportunityRepository
	ApplicationRepository    IApplicationRepository
	Transactor               Transactor
}
