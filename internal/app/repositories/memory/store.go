// Package memory is a repository driver backed by go-memdb. It mirrors the
// constraints of the Postgres schema: unique emails, one profile per user, one
// application per (student, opportunity), profiles removed with their user and
// applications removed with their opportunity.
package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/yigit/alumnilink/internal/app/repositories"
)

const (
	tableUsers    = "users"
	tableAlumni   = "alumni_profiles"
	tableStudents = "student_profiles"
	tableOpps     = "opportunities"
	tableApps     = "applications"
	tableSeq      = "sequences"
)

type txKey struct{}

// sequence stands in for a BIGSERIAL; it lives in the database so that a
// rolled back insert also rolls back its id.
type sequence struct {
	Table string
	Value int64
}

func idIndex() *memdb.IndexSchema {
	return &memdb.IndexSchema{Name: "id", Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}}
}

func intIndex(name, field string, unique bool) *memdb.IndexSchema {
	return &memdb.IndexSchema{Name: name, Unique: unique, Indexer: &memdb.IntFieldIndex{Field: field}}
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableUsers: {
				Name: tableUsers,
				Indexes: map[string]*memdb.IndexSchema{
					"id":    idIndex(),
					"email": {Name: "email", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Email"}},
					"role":  {Name: "role", Indexer: &memdb.StringFieldIndex{Field: "Role"}},
				},
			},
			tableAlumni: {
				Name: tableAlumni,
				Indexes: map[string]*memdb.IndexSchema{
					"id":      idIndex(),
					"user_id": intIndex("user_id", "UserID", true),
				},
			},
			tableStudents: {
				Name: tableStudents,
				Indexes: map[string]*memdb.IndexSchema{
					"id":      idIndex(),
					"user_id": intIndex("user_id", "UserID", true),
				},
			},
			tableOpps: {
				Name: tableOpps,
				Indexes: map[string]*memdb.IndexSchema{
					"id":        idIndex(),
					"alumni_id": intIndex("alumni_id", "AlumniID", false),
					"type":      {Name: "type", Indexer: &memdb.StringFieldIndex{Field: "Type"}},
				},
			},
			tableApps: {
				Name: tableApps,
				Indexes: map[string]*memdb.IndexSchema{
					"id":             idIndex(),
					"student_id":     intIndex("student_id", "StudentID", false),
					"opportunity_id": intIndex("opportunity_id", "OpportunityID", false),
					"student_opportunity": {
						Name:   "student_opportunity",
						Unique: true,
						Indexer: &memdb.CompoundIndex{Indexes: []memdb.Indexer{
							&memdb.IntFieldIndex{Field: "StudentID"},
							&memdb.IntFieldIndex{Field: "OpportunityID"},
						}},
					},
				},
			},
			tableSeq: {
				Name: tableSeq,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Table"}},
				},
			},
		},
	}
}

// Store wraps the database. go-memdb allows one writer at a time while read
// transactions work on snapshots, so a running transaction never blocks reads.
type Store struct {
	db  *memdb.MemDB
	now func() time.Time
}

// NewStore creates an empty Store
func NewStore() *Store {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		// the schema is static; failing here is a programming error
		panic(fmt.Sprintf("memory: invalid schema: %v", err))
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func txnFrom(ctx context.Context) *memdb.Txn {
	txn, _ := ctx.Value(txKey{}).(*memdb.Txn)
	return txn
}

// read returns the transaction carried by ctx, or a fresh read snapshot
func (s *Store) read(ctx context.Context) (*memdb.Txn, func()) {
	if txn := txnFrom(ctx); txn != nil {
		return txn, func() {}
	}
	txn := s.db.Txn(false)
	return txn, txn.Abort
}

// write runs fn in the transaction carried by ctx, or in its own write
// transaction committed when fn succeeds.
func (s *Store) write(ctx context.Context, fn func(txn *memdb.Txn) error) error {
	if txn := txnFrom(ctx); txn != nil {
		return fn(txn)
	}
	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := fn(txn); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// WithinTransaction runs fn in one write transaction, aborted when fn fails or
// panics. Nested calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txnFrom(ctx) != nil {
		return fn(ctx)
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := fn(context.WithValue(ctx, txKey{}, txn)); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// NewRepositories builds every repository on top of one Store
func NewRepositories(s *Store) *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:           &UserRepository{s: s},
		AlumniProfileRepository:  &AlumniProfileRepository{s: s},
		StudentProfileRepository: &StudentProfileRepository{s: s},
		OpportunityRepository:    &OpportunityRepository{s: s},
		ApplicationRepository:    &ApplicationRepository{s: s},
		Transactor:               s,
	}
}

func nextID(txn *memdb.Txn, table string) (int64, error) {
	raw, err := txn.First(tableSeq, "id", table)
	if err != nil {
		return 0, err
	}
	next := int64(1)
	if raw != nil {
		next = raw.(*sequence).Value + 1
	}
	if err := txn.Insert(tableSeq, &sequence{Table: table, Value: next}); err != nil {
		return 0, err
	}
	return next, nil
}

// rows drains it; stored objects are shared with the database and must be
// copied before they are changed.
func rows[T any](it memdb.ResultIterator, err error) ([]*T, error) {
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, obj.(*T))
	}
	return out, nil
}

func first[T any](txn *memdb.Txn, table, index string, args ...interface{}) (*T, error) {
	raw, err := txn.First(table, index, args...)
	if err != nil || raw == nil {
		return nil, err
	}
	return raw.(*T), nil
}

func newestFirst[T any](rows []T, createdAt func(T) time.Time, id func(T) int64) {
	sort.Slice(rows, func(i, j int) bool {
		ti, tj := createdAt(rows[i]), createdAt(rows[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return id(rows[i]) > id(rows[j])
	})
}
