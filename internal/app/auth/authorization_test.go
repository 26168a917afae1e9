package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/repositories/memory"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

func newUsers(t *testing.T) (*memory.Store, map[models.RoleType]int64) {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepositories(store)
	ids := map[models.RoleType]int64{}
	for _, role := range []models.RoleType{models.RoleAdmin, models.RoleAlumni, models.RoleStudent} {
		id, err := repos.UserRepository.CreateUser(context.Background(), &models.User{
			Name: string(role), Email: string(role) + "@x.com", Role: role,
		})
		require.NoError(t, err)
		ids[role] = id
	}
	return store, ids
}

func TestRequireRole(t *testing.T) {
	store, ids := newUsers(t)
	svc := NewAuthorizationService(memory.NewRepositories(store).UserRepository, "")
	ctx := context.Background()

	user, err := svc.RequireRole(ctx, ids[models.RoleAlumni], models.RoleAlumni)
	require.NoError(t, err)
	assert.Equal(t, ids[models.RoleAlumni], user.ID)

	_, err = svc.RequireRole(ctx, ids[models.RoleStudent], models.RoleAlumni)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "Alumni access required", err.Error())

	_, err = svc.RequireRole(ctx, 999, models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "Admin access required", err.Error())
}

func TestCanAccessProfile(t *testing.T) {
	store, ids := newUsers(t)
	users := memory.NewRepositories(store).UserRepository
	ctx := context.Background()

	open := NewAuthorizationService(users, ProfileAccessOpen)
	assert.NoError(t, open.CanAccessProfile(ctx, ids[models.RoleStudent], ids[models.RoleAlumni]))

	strict := NewAuthorizationService(users, ProfileAccessSelfOrAdmin)
	assert.NoError(t, strict.CanAccessProfile(ctx, ids[models.RoleStudent], ids[models.RoleStudent]))
	assert.NoError(t, strict.CanAccessProfile(ctx, ids[models.RoleAdmin], ids[models.RoleAlumni]))
	assert.ErrorIs(t, strict.CanAccessProfile(ctx, ids[models.RoleStudent], ids[models.RoleAlumni]), apperrors.ErrPermissionDenied)
}
