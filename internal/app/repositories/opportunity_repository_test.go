package repositories

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumnilink/internal/app/models"
)

func ptr[T any](v T) *T { return &v }

func TestBrowseQueryWithoutFilters(t *testing.T) {
	r := NewOpportunityRepository(nil)

	sql, args, err := r.browseQuery(models.OpportunityFilter{}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM opportunities o LEFT JOIN users u ON u.id = o.alumni_id")
	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY o.created_at DESC, o.id DESC")
	assert.Empty(t, args)
}

func TestBrowseQueryCombinesFilters(t *testing.T) {
	r := NewOpportunityRepository(nil)
	internship := models.OpportunityInternship

	sql, args, err := r.browseQuery(models.OpportunityFilter{
		Type:       &internship,
		Category:   ptr("cs"),
		MaxMinCGPA: ptr(6.0),
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql,
		"WHERE o.type = $1 AND o.category = $2 AND (o.min_cgpa IS NULL OR o.min_cgpa <= $3)")
	assert.Equal(t, []interface{}{"internship", "cs", 6.0}, args)
}

func TestBrowseQueryMinCGPAKeepsUnsetMinimum(t *testing.T) {
	r := NewOpportunityRepository(nil)

	sql, args, err := r.browseQuery(models.OpportunityFilter{MaxMinCGPA: ptr(7.5)}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE (o.min_cgpa IS NULL OR o.min_cgpa <= $1)")
	assert.Equal(t, []interface{}{7.5}, args)
}

func TestOwnedOpportunityQueries(t *testing.T) {
	r := NewOpportunityRepository(nil)

	sql, args, err := r.byAlumniQuery(4).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE o.alumni_id = $1 ORDER BY o.created_at DESC, o.id DESC")
	assert.Equal(t, []interface{}{int64(4)}, args)

	sql, args, err = r.oneQuery(squirrel.Eq{"o.id": int64(9), "o.alumni_id": int64(4)}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE o.alumni_id = $1 AND o.id = $2 LIMIT 1")
	assert.Equal(t, []interface{}{int64(4), int64(9)}, args)
}
