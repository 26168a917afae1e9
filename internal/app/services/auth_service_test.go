package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

func TestRegisterRejectsDuplicateEmailAcrossRoles(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	env.alumni(t, "john@x.com")

	for _, role := range []string{"admin", "alumni", "student"} {
		_, _, err := env.authSvc.Register(ctx, &dto.RegisterRequest{
			Name: "Other", Email: "john@x.com", Password: "pw", Role: role,
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict, role)
		assert.Equal(t, "User with this email already exists", apperrors.Message(err))
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name string
		req  dto.RegisterRequest
		msg  string
	}{
		{"missing name", dto.RegisterRequest{Email: "a@x.com", Password: "pw", Role: "student"}, "name is required"},
		{"missing everything", dto.RegisterRequest{}, "name is required"},
		{"missing role", dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw"}, "role is required"},
		{"bad email", dto.RegisterRequest{Name: "A", Email: "nope", Password: "pw", Role: "student"}, "Invalid email format"},
		{"bad role", dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw", Role: "teacher"}, "Invalid role. Must be admin, alumni, or student"},
		{"long name", dto.RegisterRequest{Name: strings.Repeat("n", 101), Email: "a@x.com", Password: "pw", Role: "student"}, "name must be at most 100 characters"},
		{"long email", dto.RegisterRequest{Name: "A", Email: strings.Repeat("a", 115) + "@x.com", Password: "pw", Role: "student"}, "email must be at most 120 characters"},
		{"long category", dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw", Role: "student", Category: ptr(strings.Repeat("c", 51))}, "category must be at most 50 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.authSvc.Register(context.Background(), &tt.req)
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, tt.msg, apperrors.Message(err))
		})
	}
}

func TestRegisterCreatesRoleProfile(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	alumni := env.register(t, dto.RegisterRequest{
		Name: "John", Email: "john@x.com", Role: "alumni", Company: ptr("Acme"),
	})
	profile, err := env.repos.AlumniProfileRepository.GetAlumniProfile(ctx, alumni.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", *profile.Company)

	student := env.student(t, "jane@x.com", ptr(8.5))
	sp, err := env.repos.StudentProfileRepository.GetStudentProfile(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.5, *sp.CGPA)

	admin := env.register(t, dto.RegisterRequest{Name: "Root", Email: "root@x.com", Role: "admin"})
	_, err = env.repos.AlumniProfileRepository.GetAlumniProfile(ctx, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRegisterAdminCanBeDisabled(t *testing.T) {
	env := newTestEnv(t, "")
	svc := NewAuthService(env.repos, env.jwt, true, zerolog.Nop())

	_, _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Root", Email: "root@x.com", Password: "pw", Role: "admin",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	john := env.alumni(t, "john@x.com")

	user, token, err := env.authSvc.Login(ctx, &dto.LoginRequest{Email: "john@x.com", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, john.ID, user.ID)

	subject, err := env.jwt.SubjectUserID(token)
	require.NoError(t, err)
	assert.Equal(t, john.ID, subject)

	_, _, err = env.authSvc.Login(ctx, &dto.LoginRequest{Email: "john@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", apperrors.Message(err))

	_, _, err = env.authSvc.Login(ctx, &dto.LoginRequest{Email: "ghost@x.com", Password: "pw123"})
	assert.Equal(t, "Invalid email or password", apperrors.Message(err))

	_, _, err = env.authSvc.Login(ctx, &dto.LoginRequest{Email: "john@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Email and password are required", apperrors.Message(err))
}

func TestMeAttachesProfileOnlyForProfileRoles(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	student := env.student(t, "jane@x.com", ptr(8.5))
	me, err := env.authSvc.Me(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, me.User.ID)
	require.NotNil(t, me.StudentProfile)
	assert.Nil(t, me.AlumniProfile)

	admin := env.register(t, dto.RegisterRequest{Name: "Root", Email: "root@x.com", Role: "admin"})
	me, err = env.authSvc.Me(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, me.User.Role)
	assert.Nil(t, me.StudentProfile)
	assert.Nil(t, me.AlumniProfile)

	_, err = env.authSvc.Me(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRegisterPasswordByteLimit(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	for name, password := range map[string]string{
		"ascii":     strings.Repeat("p", 80),
		"multibyte": strings.Repeat("é", 40),
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := env.authSvc.Register(ctx, &dto.RegisterRequest{
				Name: "A", Email: name + "@x.com", Password: password, Role: "student",
			})
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, "password must be at most 72 bytes", apperrors.Message(err))
		})
	}

	longest := strings.Repeat("p", 72)
	env.register(t, dto.RegisterRequest{Name: "A", Email: "ok@x.com", Password: longest, Role: "student"})
	_, _, err := env.authSvc.Login(ctx, &dto.LoginRequest{Email: "ok@x.com", Password: longest})
	assert.NoError(t, err)
}
