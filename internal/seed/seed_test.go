package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/repositories/memory"
	"github.com/yigit/alumnilink/internal/pkg/auth"
)

func init() {
	auth.BcryptCost = 4
}

const accountsYAML = `
accounts:
  - name: John Alumni
    email: john@x.com
    password: pw123
    role: alumni
    company: Acme
  - name: Jane Student
    email: jane@x.com
    password: pw123
    role: student
    cgpa: 8.5
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	opts := Options{AdminEmail: "admin@alumni.com", AdminPassword: "admin123", AccountsFile: writeFile(t, accountsYAML)}

	require.NoError(t, CreateDefaultData(ctx, repos, opts, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos, opts, zerolog.Nop()))

	total, err := repos.UserRepository.CountUsers(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	admin, err := repos.UserRepository.GetUserByEmail(ctx, "admin@alumni.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "admin123"))

	jane, err := repos.UserRepository.GetUserByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	profile, err := repos.StudentProfileRepository.GetStudentProfile(ctx, jane.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.CGPA)
	assert.Equal(t, 8.5, *profile.CGPA)

	john, err := repos.UserRepository.GetUserByEmail(ctx, "john@x.com")
	require.NoError(t, err)
	alumni, err := repos.AlumniProfileRepository.GetAlumniProfile(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", *alumni.Company)
}

func TestLoadAccountsRejectsInvalidRole(t *testing.T) {
	_, err := LoadAccounts(writeFile(t, "accounts:\n  - {name: X, email: x@x.com, password: p, role: instructor}\n"))
	assert.ErrorContains(t, err, "invalid role")
}

func TestLoadAccountsMissingFile(t *testing.T) {
	_, err := LoadAccounts(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
