package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/alumnilink/internal/app/auth"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/app/repositories"
	"github.com/yigit/alumnilink/internal/app/repositories/memory"
	"github.com/yigit/alumnilink/internal/pkg/auth"
	"github.com/yigit/alumnilink/internal/pkg/filestorage"
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func init() {
	auth.BcryptCost = 4
}

type testEnv struct {
	repos      *repositories.Repositories
	jwt        *auth.JWTService
	uploadDir  string
	storage    *filestorage.LocalStorage
	authSvc    *AuthService
	adminSvc   AdminService
	alumniSvc  AlumniService
	studentSvc StudentService
	profileSvc ProfileService
}

func newTestEnv(t *testing.T, policy appauth.ProfilePolicy) *testEnv {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	uploadDir := filepath.Join(t.TempDir(), "uploads")
	storage, err := filestorage.NewLocalStorage(uploadDir, 1<<20)
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "alumnilink-test",
	})
	log := zerolog.Nop()

	return &testEnv{
		repos:      repos,
		jwt:        jwtService,
		uploadDir:  uploadDir,
		storage:    storage,
		authSvc:    NewAuthService(repos, jwtService, false, log),
		adminSvc:   NewAdminService(repos, log),
		alumniSvc:  NewAlumniService(repos, log),
		studentSvc: NewStudentService(repos, storage, log),
		profileSvc: NewProfileService(repos, appauth.NewAuthorizationService(repos.UserRepository, policy), log),
	}
}

func (e *testEnv) register(t *testing.T, req dto.RegisterRequest) *models.User {
	t.Helper()
	if req.Password == "" {
		req.Password = "pw123"
	}
	user, _, err := e.authSvc.Register(context.Background(), &req)
	require.NoError(t, err)
	return user
}

func (e *testEnv) alumni(t *testing.T, email string) *models.User {
	return e.register(t, dto.RegisterRequest{Name: "Alumni " + email, Email: email, Role: "alumni"})
}

func (e *testEnv) student(t *testing.T, email string, cgpa *float64) *models.User {
	return e.register(t, dto.RegisterRequest{Name: "Student " + email, Email: email, Role: "student", CGPA: cgpa})
}

func (e *testEnv) opportunity(t *testing.T, alumniID int64, minCGPA *float64) *models.Opportunity {
	t.Helper()
	opp, err := e.alumniSvc.CreateOpportunity(context.Background(), alumniID, &dto.CreateOpportunityRequest{
		Type:        "internship",
		Title:       "T",
		Description: "D",
		MinCGPA:     minCGPA,
	})
	require.NoError(t, err)
	return opp
}

func (e *testEnv) uploads(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.uploadDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["resume"][0]
}

func ptr[T any](v T) *T { return &v }
