package memory

import (
	"context"
	"time"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

// OpportunityRepository is the in-memory opportunities table
type OpportunityRepository struct {
	s *Store
}

// opportunityView copies o and fills the author's name; the name stays nil once the author is gone
func opportunityView(txn *memdb.Txn, o *models.Opportunity) (*models.Opportunity, error) {
	out := *o
	out.AlumniName = nil
	u, err := first[models.User](txn, tableUsers, "id", o.AlumniID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		name := u.Name
		out.AlumniName = &name
	}
	return &out, nil
}

func opportunityViews(txn *memdb.Txn, stored []*models.Opportunity) ([]*models.Opportunity, error) {
	opps := make([]*models.Opportunity, 0, len(stored))
	for _, o := range stored {
		v, err := opportunityView(txn, o)
		if err != nil {
			return nil, err
		}
		opps = append(opps, v)
	}
	newestFirst(opps,
		func(o *models.Opportunity) time.Time { return o.CreatedAt },
		func(o *models.Opportunity) int64 { return o.ID })
	return opps, nil
}

func ownedOpportunity(txn *memdb.Txn, id, alumniID int64) (*models.Opportunity, error) {
	o, err := first[models.Opportunity](txn, tableOpps, "id", id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.AlumniID != alumniID {
		return nil, apperrors.ErrOpportunityNotFound
	}
	return o, nil
}

func (r *OpportunityRepository) CreateOpportunity(ctx context.Context, o *models.Opportunity) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		id, err := nextID(txn, tableOpps)
		if err != nil {
			return err
		}
		o.ID = id
		o.CreatedAt = r.s.now()
		o.AlumniName = nil
		row := *o
		return txn.Insert(tableOpps, &row)
	})
}

func (r *OpportunityRepository) GetOpportunityByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	txn, done := r.s.read(ctx)
	defer done()

	o, err := first[models.Opportunity](txn, tableOpps, "id", id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.ErrOpportunityNotFound
	}
	return opportunityView(txn, o)
}

func (r *OpportunityRepository) GetOwnedOpportunity(ctx context.Context, id, alumniID int64) (*models.Opportunity, error) {
	txn, done := r.s.read(ctx)
	defer done()

	o, err := ownedOpportunity(txn, id, alumniID)
	if err != nil {
		return nil, err
	}
	return opportunityView(txn, o)
}

func (r *OpportunityRepository) ListOpportunitiesByAlumni(ctx context.Context, alumniID int64) ([]*models.Opportunity, error) {
	txn, done := r.s.read(ctx)
	defer done()

	stored, err := rows[models.Opportunity](txn.Get(tableOpps, "alumni_id", alumniID))
	if err != nil {
		return nil, err
	}
	return opportunityViews(txn, stored)
}

func (r *OpportunityRepository) ListOpportunities(ctx context.Context, filter models.OpportunityFilter) ([]*models.Opportunity, error) {
	txn, done := r.s.read(ctx)
	defer done()

	var (
		it  memdb.ResultIterator
		err error
	)
	if filter.Type != nil {
		it, err = txn.Get(tableOpps, "type", string(*filter.Type))
	} else {
		it, err = txn.Get(tableOpps, "id")
	}
	if err != nil {
		return nil, err
	}

	skip := func(raw interface{}) bool {
		o := raw.(*models.Opportunity)
		if filter.Category != nil && (o.Category == nil || *o.Category != *filter.Category) {
			return true
		}
		return filter.MaxMinCGPA != nil && o.MinCGPA != nil && *o.MinCGPA > *filter.MaxMinCGPA
	}
	stored, err := rows[models.Opportunity](memdb.NewFilterIterator(it, skip), nil)
	if err != nil {
		return nil, err
	}
	return opportunityViews(txn, stored)
}

func (r *OpportunityRepository) UpdateOpportunity(ctx context.Context, o *models.Opportunity) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		cur, err := first[models.Opportunity](txn, tableOpps, "id", o.ID)
		if err != nil {
			return err
		}
		if cur == nil {
			return apperrors.ErrOpportunityNotFound
		}
		next := *o
		next.AlumniID, next.CreatedAt, next.AlumniName = cur.AlumniID, cur.CreatedAt, nil
		return txn.Insert(tableOpps, &next)
	})
}

// DeleteOwnedOpportunity removes the opportunity together with its applications
func (r *OpportunityRepository) DeleteOwnedOpportunity(ctx context.Context, id, alumniID int64) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		o, err := ownedOpportunity(txn, id, alumniID)
		if err != nil {
			return err
		}
		if err := txn.Delete(tableOpps, o); err != nil {
			return err
		}
		_, err = txn.DeleteAll(tableApps, "opportunity_id", id)
		return err
	})
}
