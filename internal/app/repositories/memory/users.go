package memory

import (
	"context"
	"sort"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

// UserRepository is the in-memory users table
type UserRepository struct {
	s *Store
}

func emailTaken(txn *memdb.Txn, email string, except int64) (bool, error) {
	u, err := first[models.User](txn, tableUsers, "email", email)
	if err != nil {
		return false, err
	}
	return u != nil && u.ID != except, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	err := r.s.write(ctx, func(txn *memdb.Txn) error {
		taken, err := emailTaken(txn, user.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrEmailAlreadyExists
		}
		id, err := nextID(txn, tableUsers)
		if err != nil {
			return err
		}
		user.ID = id
		user.CreatedAt = r.s.now()
		row := *user
		return txn.Insert(tableUsers, &row)
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	txn, done := r.s.read(ctx)
	defer done()

	u, err := first[models.User](txn, tableUsers, "id", id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	txn, done := r.s.read(ctx)
	defer done()

	u, err := first[models.User](txn, tableUsers, "email", email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	txn, done := r.s.read(ctx)
	defer done()
	return emailTaken(txn, email, 0)
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	txn, done := r.s.read(ctx)
	defer done()

	stored, err := rows[models.User](txn.Get(tableUsers, "id"))
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(stored))
	for _, u := range stored {
		u := *u
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *UserRepository) UpdateUserIdentity(ctx context.Context, id int64, name, email string) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		cur, err := first[models.User](txn, tableUsers, "id", id)
		if err != nil {
			return err
		}
		if cur == nil {
			return apperrors.ErrUserNotFound
		}
		taken, err := emailTaken(txn, email, id)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrEmailAlreadyExists
		}
		next := *cur
		next.Name, next.Email = name, email
		return txn.Insert(tableUsers, &next)
	})
}

// DeleteUser removes the user and its profile. Opportunities and applications
// referencing it are left in place, as in the Postgres schema.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		u, err := first[models.User](txn, tableUsers, "id", id)
		if err != nil {
			return err
		}
		if u == nil {
			return apperrors.ErrUserNotFound
		}
		if err := txn.Delete(tableUsers, u); err != nil {
			return err
		}
		if _, err := txn.DeleteAll(tableAlumni, "user_id", id); err != nil {
			return err
		}
		_, err = txn.DeleteAll(tableStudents, "user_id", id)
		return err
	})
}

func (r *UserRepository) CountUsers(ctx context.Context, role *models.RoleType) (int64, error) {
	txn, done := r.s.read(ctx)
	defer done()

	var (
		it  memdb.ResultIterator
		err error
	)
	if role == nil {
		it, err = txn.Get(tableUsers, "id")
	} else {
		it, err = txn.Get(tableUsers, "role", string(*role))
	}
	users, err := rows[models.User](it, err)
	if err != nil {
		return 0, err
	}
	return int64(len(users)), nil
}
