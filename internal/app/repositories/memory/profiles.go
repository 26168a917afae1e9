package memory

import (
	"context"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

var errProfileExists = apperrors.NewConflictError("Profile already exists")

// AlumniProfileRepository is the in-memory alumni_profiles table
type AlumniProfileRepository struct {
	s *Store
}

func (r *AlumniProfileRepository) insert(txn *memdb.Txn, p *models.AlumniProfile) error {
	cur, err := first[models.AlumniProfile](txn, tableAlumni, "user_id", p.UserID)
	if err != nil {
		return err
	}
	if cur != nil {
		return errProfileExists
	}
	id, err := nextID(txn, tableAlumni)
	if err != nil {
		return err
	}
	p.ID = id
	p.CreatedAt = r.s.now()
	row := *p
	return txn.Insert(tableAlumni, &row)
}

func (r *AlumniProfileRepository) CreateAlumniProfile(ctx context.Context, p *models.AlumniProfile) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error { return r.insert(txn, p) })
}

func (r *AlumniProfileRepository) GetAlumniProfile(ctx context.Context, userID int64) (*models.AlumniProfile, error) {
	txn, done := r.s.read(ctx)
	defer done()

	p, err := first[models.AlumniProfile](txn, tableAlumni, "user_id", userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	out := *p
	return &out, nil
}

func (r *AlumniProfileRepository) EnsureAlumniProfile(ctx context.Context, userID int64) (*models.AlumniProfile, error) {
	var out *models.AlumniProfile
	err := r.s.write(ctx, func(txn *memdb.Txn) error {
		cur, err := first[models.AlumniProfile](txn, tableAlumni, "user_id", userID)
		if err != nil {
			return err
		}
		if cur != nil {
			p := *cur
			out = &p
			return nil
		}
		out = &models.AlumniProfile{UserID: userID}
		return r.insert(txn, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AlumniProfileRepository) UpdateAlumniProfile(ctx context.Context, p *models.AlumniProfile) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		cur, err := first[models.AlumniProfile](txn, tableAlumni, "user_id", p.UserID)
		if err != nil {
			return err
		}
		if cur == nil {
			return apperrors.ErrProfileNotFound
		}
		next := *cur
		next.Occupation, next.Company, next.Domain = p.Occupation, p.Company, p.Domain
		next.Contact = p.Contact
		return txn.Insert(tableAlumni, &next)
	})
}

// StudentProfileRepository is the in-memory student_profiles table
type StudentProfileRepository struct {
	s *Store
}

func (r *StudentProfileRepository) insert(txn *memdb.Txn, p *models.StudentProfile) error {
	cur, err := first[models.StudentProfile](txn, tableStudents, "user_id", p.UserID)
	if err != nil {
		return err
	}
	if cur != nil {
		return errProfileExists
	}
	id, err := nextID(txn, tableStudents)
	if err != nil {
		return err
	}
	p.ID = id
	p.CreatedAt = r.s.now()
	row := *p
	return txn.Insert(tableStudents, &row)
}

func (r *StudentProfileRepository) CreateStudentProfile(ctx context.Context, p *models.StudentProfile) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error { return r.insert(txn, p) })
}

func (r *StudentProfileRepository) GetStudentProfile(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	txn, done := r.s.read(ctx)
	defer done()

	p, err := first[models.StudentProfile](txn, tableStudents, "user_id", userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	out := *p
	return &out, nil
}

func (r *StudentProfileRepository) EnsureStudentProfile(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	var out *models.StudentProfile
	err := r.s.write(ctx, func(txn *memdb.Txn) error {
		cur, err := first[models.StudentProfile](txn, tableStudents, "user_id", userID)
		if err != nil {
			return err
		}
		if cur != nil {
			p := *cur
			out = &p
			return nil
		}
		out = &models.StudentProfile{UserID: userID}
		return r.insert(txn, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StudentProfileRepository) UpdateStudentProfile(ctx context.Context, p *models.StudentProfile) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		cur, err := first[models.StudentProfile](txn, tableStudents, "user_id", p.UserID)
		if err != nil {
			return err
		}
		if cur == nil {
			return apperrors.ErrProfileNotFound
		}
		next := *cur
		next.CGPA, next.Category = p.CGPA, p.Category
		next.Contact = p.Contact
		return txn.Insert(tableStudents, &next)
	})
}
