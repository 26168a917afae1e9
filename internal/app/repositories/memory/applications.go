package memory

import (
	"context"
	"time"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

// ApplicationRepository is the in-memory applications table
type ApplicationRepository struct {
	s *Store
}

func applicationView(txn *memdb.Txn, a *models.Application) (*models.Application, error) {
	out := *a
	out.StudentName, out.OpportunityTitle = nil, nil

	u, err := first[models.User](txn, tableUsers, "id", a.StudentID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		name := u.Name
		out.StudentName = &name
	}
	o, err := first[models.Opportunity](txn, tableOpps, "id", a.OpportunityID)
	if err != nil {
		return nil, err
	}
	if o != nil {
		title := o.Title
		out.OpportunityTitle = &title
	}
	return &out, nil
}

func applicationViews(txn *memdb.Txn, stored []*models.Application) ([]*models.Application, error) {
	apps := make([]*models.Application, 0, len(stored))
	for _, a := range stored {
		v, err := applicationView(txn, a)
		if err != nil {
			return nil, err
		}
		apps = append(apps, v)
	}
	newestFirst(apps,
		func(a *models.Application) time.Time { return a.AppliedAt },
		func(a *models.Application) int64 { return a.ID })
	return apps, nil
}

func applicationByID(txn *memdb.Txn, id int64) (*models.Application, error) {
	a, err := first[models.Application](txn, tableApps, "id", id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperrors.ErrApplicationNotFound
	}
	return a, nil
}

func (r *ApplicationRepository) CreateApplication(ctx context.Context, a *models.Application) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		o, err := first[models.Opportunity](txn, tableOpps, "id", a.OpportunityID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperrors.ErrOpportunityNotFound
		}
		dup, err := txn.First(tableApps, "student_opportunity", a.StudentID, a.OpportunityID)
		if err != nil {
			return err
		}
		if dup != nil {
			return apperrors.ErrAlreadyApplied
		}

		id, err := nextID(txn, tableApps)
		if err != nil {
			return err
		}
		a.ID = id
		a.Status = models.StatusPending
		a.AppliedAt = r.s.now()
		a.StudentName, a.OpportunityTitle = nil, nil
		row := *a
		return txn.Insert(tableApps, &row)
	})
}

func (r *ApplicationRepository) ApplicationExists(ctx context.Context, studentID, opportunityID int64) (bool, error) {
	txn, done := r.s.read(ctx)
	defer done()

	a, err := txn.First(tableApps, "student_opportunity", studentID, opportunityID)
	if err != nil {
		return false, err
	}
	return a != nil, nil
}

func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	txn, done := r.s.read(ctx)
	defer done()

	a, err := applicationByID(txn, id)
	if err != nil {
		return nil, err
	}
	return applicationView(txn, a)
}

func (r *ApplicationRepository) GetStudentApplication(ctx context.Context, id, studentID int64) (*models.Application, error) {
	txn, done := r.s.read(ctx)
	defer done()

	a, err := applicationByID(txn, id)
	if err != nil {
		return nil, err
	}
	if a.StudentID != studentID {
		return nil, apperrors.ErrApplicationNotFound
	}
	return applicationView(txn, a)
}

func (r *ApplicationRepository) GetAlumniApplication(ctx context.Context, id, alumniID int64) (*models.Application, error) {
	txn, done := r.s.read(ctx)
	defer done()

	a, err := applicationByID(txn, id)
	if err != nil {
		return nil, err
	}
	o, err := first[models.Opportunity](txn, tableOpps, "id", a.OpportunityID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.AlumniID != alumniID {
		return nil, apperrors.ErrApplicationNotFound
	}
	return applicationView(txn, a)
}

func (r *ApplicationRepository) ListApplicationsByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	txn, done := r.s.read(ctx)
	defer done()

	stored, err := rows[models.Application](txn.Get(tableApps, "student_id", studentID))
	if err != nil {
		return nil, err
	}
	return applicationViews(txn, stored)
}

func (r *ApplicationRepository) ListApplicationsForAlumni(ctx context.Context, alumniID int64) ([]*models.Application, error) {
	txn, done := r.s.read(ctx)
	defer done()

	opps, err := rows[models.Opportunity](txn.Get(tableOpps, "alumni_id", alumniID))
	if err != nil {
		return nil, err
	}
	var stored []*models.Application
	for _, o := range opps {
		apps, err := rows[models.Application](txn.Get(tableApps, "opportunity_id", o.ID))
		if err != nil {
			return nil, err
		}
		stored = append(stored, apps...)
	}
	return applicationViews(txn, stored)
}

func (r *ApplicationRepository) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		cur, err := applicationByID(txn, id)
		if err != nil {
			return err
		}
		next := *cur
		next.Status = status
		return txn.Insert(tableApps, &next)
	})
}

func (r *ApplicationRepository) DeleteApplication(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		a, err := applicationByID(txn, id)
		if err != nil {
			return err
		}
		return txn.Delete(tableApps, a)
	})
}
