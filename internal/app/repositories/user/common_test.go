package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumnilink/internal/app/models"
)

func TestCountQuery(t *testing.T) {
	r := NewRepository(nil)

	sql, args, err := r.countQuery(nil).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM users", sql)
	assert.Empty(t, args)

	role := models.RoleAlumni
	sql, args, err = r.countQuery(&role).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE role = $1", sql)
	assert.Equal(t, []interface{}{"alumni"}, args)
}
