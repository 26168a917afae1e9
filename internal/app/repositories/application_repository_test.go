package repositories

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const applicationSelect = "SELECT a.id, a.student_id, a.opportunity_id, a.status, a.resume_file, a.applied_at, u.name, o.title " +
	"FROM applications a " +
	"LEFT JOIN users u ON u.id = a.student_id " +
	"LEFT JOIN opportunities o ON o.id = a.opportunity_id"

func TestAlumniApplicationQueryIsOwnerScoped(t *testing.T) {
	r := NewApplicationRepository(nil)

	sql, args, err := r.oneQuery(squirrel.And{squirrel.Eq{"a.id": int64(3)}, alumniScope(7)}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, applicationSelect+" WHERE (a.id = $1 AND o.alumni_id = $2) LIMIT 1", sql)
	assert.Equal(t, []interface{}{int64(3), int64(7)}, args)
}

func TestApplicationsForAlumniQuery(t *testing.T) {
	r := NewApplicationRepository(nil)

	sql, args, err := r.listQuery(alumniScope(7)).ToSql()
	require.NoError(t, err)

	assert.Equal(t, applicationSelect+" WHERE o.alumni_id = $1 ORDER BY a.applied_at DESC, a.id DESC", sql)
	assert.Equal(t, []interface{}{int64(7)}, args)
}

func TestApplicationsByStudentQuery(t *testing.T) {
	r := NewApplicationRepository(nil)

	sql, args, err := r.listQuery(squirrel.Eq{"a.student_id": int64(5)}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, applicationSelect+" WHERE a.student_id = $1 ORDER BY a.applied_at DESC, a.id DESC", sql)
	assert.Equal(t, []interface{}{int64(5)}, args)
}
