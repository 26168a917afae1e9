package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

func TestAdminListUsers(t *testing.T) {
	env := newTestEnv(t, "")
	admin := env.register(t, dto.RegisterRequest{Name: "Root", Email: "root@x.com", Role: "admin"})
	alumni := env.alumni(t, "john@x.com")
	student := env.student(t, "jane@x.com", nil)

	users, err := env.adminSvc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, []int64{admin.ID, alumni.ID, student.ID}, []int64{users[0].User.ID, users[1].User.ID, users[2].User.ID})
	assert.Nil(t, users[0].AlumniProfile)
	assert.NotNil(t, users[1].AlumniProfile)
	assert.NotNil(t, users[2].StudentProfile)
}

func TestAdminDeleteUser(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	admin := env.register(t, dto.RegisterRequest{Name: "Root", Email: "root@x.com", Role: "admin"})
	alumni := env.alumni(t, "john@x.com")
	opp := env.opportunity(t, alumni.ID, nil)

	err := env.adminSvc.DeleteUser(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "Cannot delete your own account", apperrors.Message(err))

	err = env.adminSvc.DeleteUser(ctx, admin.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	require.NoError(t, env.adminSvc.DeleteUser(ctx, admin.ID, alumni.ID))

	_, err = env.repos.AlumniProfileRepository.GetAlumniProfile(ctx, alumni.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	// the posting outlives its author
	left, err := env.repos.OpportunityRepository.GetOpportunityByID(ctx, opp.ID)
	require.NoError(t, err)
	assert.Nil(t, left.AlumniName)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t, "")
	env.register(t, dto.RegisterRequest{Name: "Root", Email: "root@x.com", Role: "admin"})
	env.alumni(t, "a1@x.com")
	env.alumni(t, "a2@x.com")
	env.student(t, "s1@x.com", nil)

	stats, err := env.adminSvc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.StatsResponse{TotalUsers: 4, AdminCount: 1, AlumniCount: 2, StudentCount: 1}, *stats)
}
