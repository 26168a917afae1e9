package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/alumnilink/internal/app/auth"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

func TestProfileGetParameters(t *testing.T) {
	env := newTestEnv(t, appauth.ProfileAccessOpen)
	ctx := context.Background()
	student := env.student(t, "jane@x.com", nil)

	for _, q := range []*dto.ProfileQuery{
		nil,
		{Type: "admin", ID: student.ID},
		{Type: "student", ID: 0},
		{Type: "", ID: student.ID},
	} {
		_, err := env.profileSvc.Get(ctx, student.ID, q)
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, "Invalid parameters", apperrors.Message(err))
	}

	_, err := env.profileSvc.Get(ctx, student.ID, &dto.ProfileQuery{Type: "student", ID: 999})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "User not found", apperrors.Message(err))

	_, err = env.profileSvc.Get(ctx, student.ID, &dto.ProfileQuery{Type: "alumni", ID: student.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestProfileGetCreatesMissingProfile(t *testing.T) {
	env := newTestEnv(t, appauth.ProfileAccessOpen)
	ctx := context.Background()
	id, err := env.repos.UserRepository.CreateUser(ctx, &models.User{Name: "Bare", Email: "bare@x.com", Role: models.RoleStudent})
	require.NoError(t, err)

	got, err := env.profileSvc.Get(ctx, id, &dto.ProfileQuery{Type: "student", ID: id})
	require.NoError(t, err)
	require.NotNil(t, got.StudentProfile)

	again, err := env.profileSvc.Get(ctx, id, &dto.ProfileQuery{Type: "student", ID: id})
	require.NoError(t, err)
	assert.Equal(t, got.StudentProfile.ID, again.StudentProfile.ID)
}

func TestProfileUpdate(t *testing.T) {
	env := newTestEnv(t, appauth.ProfileAccessOpen)
	ctx := context.Background()
	alumni := env.alumni(t, "john@x.com")
	env.student(t, "jane@x.com", nil)
	query := &dto.ProfileQuery{Type: "alumni", ID: alumni.ID}

	var req dto.UpdatePublicProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Johnny",
		"email": "johnny@x.com",
		"linkedIn": "in/johnny",
		"workingDomain": "backend",
		"cgpa": 9.9
	}`), &req))

	updated, err := env.profileSvc.Update(ctx, alumni.ID, query, &req)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.User.Name)
	assert.Equal(t, "johnny@x.com", updated.User.Email)
	assert.Equal(t, "in/johnny", *updated.AlumniProfile.LinkedIn)
	assert.Equal(t, "backend", *updated.AlumniProfile.Domain)

	stored, err := env.repos.UserRepository.GetUserByEmail(ctx, "johnny@x.com")
	require.NoError(t, err)
	assert.Equal(t, alumni.ID, stored.ID)

	_, err = env.profileSvc.Update(ctx, alumni.ID, query, &dto.UpdatePublicProfileRequest{Email: dto.Some("jane@x.com")})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = env.profileSvc.Update(ctx, alumni.ID, query, &dto.UpdatePublicProfileRequest{Email: dto.Some("not-an-email")})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Invalid email format", apperrors.Message(err))

	longLink := "https://linkedin.com/in/" + strings.Repeat("j", 240)
	_, err = env.profileSvc.Update(ctx, alumni.ID, query, &dto.UpdatePublicProfileRequest{LinkedIn: dto.Some(longLink)})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "linkedIn must be at most 255 characters", apperrors.Message(err))
}

func TestProfileAccessPolicy(t *testing.T) {
	ctx := context.Background()

	open := newTestEnv(t, appauth.ProfileAccessOpen)
	john := open.alumni(t, "john@x.com")
	jane := open.student(t, "jane@x.com", nil)
	_, err := open.profileSvc.Update(ctx, jane.ID, &dto.ProfileQuery{Type: "alumni", ID: john.ID},
		&dto.UpdatePublicProfileRequest{Bio: dto.Some("edited by someone else")})
	assert.NoError(t, err)

	strict := newTestEnv(t, appauth.ProfileAccessSelfOrAdmin)
	john = strict.alumni(t, "john@x.com")
	jane = strict.student(t, "jane@x.com", nil)
	admin := strict.register(t, dto.RegisterRequest{Name: "Root", Email: "root@x.com", Role: "admin"})

	_, err = strict.profileSvc.Get(ctx, jane.ID, &dto.ProfileQuery{Type: "alumni", ID: john.ID})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = strict.profileSvc.Get(ctx, john.ID, &dto.ProfileQuery{Type: "alumni", ID: john.ID})
	assert.NoError(t, err)

	_, err = strict.profileSvc.Get(ctx, admin.ID, &dto.ProfileQuery{Type: "alumni", ID: john.ID})
	assert.NoError(t, err)
}
