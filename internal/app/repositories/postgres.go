package repositories

import (
	"github.com/yigit/alumnilink/internal/app/repositories/user"
	"github.com/yigit/alumnilink/internal/db"
)

// NewPostgresRepositories builds every repository on top of pgdb; pgdb itself
// is the Transactor.
func NewPostgresRepositories(pgdb *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:           user.NewRepository(pgdb.Pool),
		AlumniProfileRepository:  user.NewAlumniRepository(pgdb.Pool),
		StudentProfileRepository: user.NewStudentRepository(pgdb.Pool),
		OpportunityRepository:    NewOpportunityRepository(pgdb.Pool),
		ApplicationRepository:    NewApplicationRepository(pgdb.Pool),
		Transactor:               pgdb,
	}
}
