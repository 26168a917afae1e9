package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumnilink/internal/config"
	pkgAuth "github.com/yigit/alumnilink/internal/pkg/auth"
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.StoragePath = t.TempDir()
	cfg.Server.MaxUploadSize = 1 << 20
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "test"
	cfg.Security.ProfileAccess = config.ProfileAccessOpen
	cfg.Security.BcryptCost = 4
	cfg.Seed.AdminEmail = "admin@alumni.com"
	cfg.Seed.AdminPassword = "admin123"

	lgr := zerolog.Nop()
	repos, database, err := SetupRepositories(context.Background(), cfg, lgr)
	require.NoError(t, err)
	require.Nil(t, database)

	deps, err := BuildDependencies(cfg, repos, lgr)
	require.NoError(t, err)
	t.Cleanup(func() { pkgAuth.BcryptCost = 10 })

	SeedData(context.Background(), cfg, repos, lgr)
	return &api{t: t, router: SetupRouter(cfg, deps, lgr)}
}

func (a *api) send(req *http.Request, token string) (int, map[string]interface{}) {
	a.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	body := map[string]interface{}{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &body)
	}
	return w.Code, body
}

func (a *api) json(method, path, token string, payload interface{}) (int, map[string]interface{}) {
	a.t.Helper()
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return a.send(req, token)
}

func (a *api) upload(path, token, filename, content string) (int, map[string]interface{}) {
	a.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("resume", filename)
	require.NoError(a.t, err)
	_, err = part.Write([]byte(content))
	require.NoError(a.t, err)
	require.NoError(a.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.send(req, token)
}

func (a *api) register(payload map[string]interface{}) {
	a.t.Helper()
	code, body := a.json(http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(a.t, http.StatusCreated, code, body)
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	code, body := a.json(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, code, body)
	token, ok := body["access_token"].(string)
	require.True(a.t, ok)
	return token
}

func id(m map[string]interface{}, key string) int64 {
	return int64(m[key].(map[string]interface{})["id"].(float64))
}

func TestOpportunityScenario(t *testing.T) {
	a := newAPI(t)

	a.register(map[string]interface{}{"name": "John", "email": "john@x.com", "password": "pw123", "role": "alumni"})
	alumniToken := a.login("john@x.com", "pw123")

	code, body := a.json(http.MethodPost, "/api/alumni/opportunities", alumniToken, map[string]interface{}{
		"type": "internship", "title": "T", "description": "D", "min_cgpa": 7.0,
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "Opportunity created successfully", body["message"])
	oppID := id(body, "opportunity")

	a.register(map[string]interface{}{"name": "Jane", "email": "jane@x.com", "password": "pw123", "role": "student", "cgpa": 8.5})
	studentToken := a.login("jane@x.com", "pw123")

	code, body = a.upload(fmt.Sprintf("/api/student/opportunities/%d/apply", oppID), studentToken, "cv.pdf", samplePDF)
	require.Equal(t, http.StatusCreated, code, body)
	application := body["application"].(map[string]interface{})
	assert.Equal(t, "pending", application["status"])
	assert.Equal(t, "T", application["opportunity_title"])
	appID := id(body, "application")
	resume := application["resume_file"].(string)

	code, body = a.upload(fmt.Sprintf("/api/student/opportunities/%d/apply", oppID), studentToken, "cv.pdf", samplePDF)
	assert.Equal(t, http.StatusConflict, code, body)

	code, body = a.json(http.MethodPut, fmt.Sprintf("/api/alumni/applications/%d/status", appID), alumniToken,
		map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, code, body)

	code, body = a.json(http.MethodGet, "/api/student/applications", studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	apps := body["applications"].([]interface{})
	require.Len(t, apps, 1)
	assert.Equal(t, "accepted", apps[0].(map[string]interface{})["status"])

	code, body = a.json(http.MethodDelete, fmt.Sprintf("/api/student/applications/%d", appID), studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VAL_001", body["code"])

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/files/"+resume, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, samplePDF, w.Body.String())
}

func TestRoleGatesAndAuth(t *testing.T) {
	a := newAPI(t)
	a.register(map[string]interface{}{"name": "Jane", "email": "jane@x.com", "password": "pw123", "role": "student", "cgpa": 8.5})
	token := a.login("jane@x.com", "pw123")

	code, body := a.json(http.MethodGet, "/api/alumni/opportunities", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Alumni access required", body["error"])

	code, _ = a.json(http.MethodGet, "/api/student/opportunities", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = a.json(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "jane@x.com", user["email"])
	assert.Equal(t, 8.5, user["profile"].(map[string]interface{})["cgpa"])

	code, body = a.json(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Other", "email": "jane@x.com", "password": "pw", "role": "alumni",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "RES_002", body["code"])

	code, body = a.json(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "jane@x.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestStudentOpportunityFilters(t *testing.T) {
	a := newAPI(t)
	a.register(map[string]interface{}{"name": "John", "email": "john@x.com", "password": "pw123", "role": "alumni"})
	alumniToken := a.login("john@x.com", "pw123")
	a.register(map[string]interface{}{"name": "Jane", "email": "jane@x.com", "password": "pw123", "role": "student"})
	studentToken := a.login("jane@x.com", "pw123")

	for _, opp := range []map[string]interface{}{
		{"type": "internship", "title": "five", "description": "D", "min_cgpa": 5.0},
		{"type": "internship", "title": "six", "description": "D", "min_cgpa": 6.0},
		{"type": "scholarship", "title": "seven", "description": "D", "min_cgpa": 7.0},
		{"type": "mentorship", "title": "open", "description": "D"},
	} {
		code, body := a.json(http.MethodPost, "/api/alumni/opportunities", alumniToken, opp)
		require.Equal(t, http.StatusCreated, code, body)
	}

	titles := func(path string) []string {
		code, body := a.json(http.MethodGet, path, studentToken, nil)
		require.Equal(t, http.StatusOK, code, body)
		var out []string
		for _, o := range body["opportunities"].([]interface{}) {
			out = append(out, o.(map[string]interface{})["title"].(string))
		}
		return out
	}

	assert.ElementsMatch(t, []string{"five", "six", "open"}, titles("/api/student/opportunities?min_cgpa=6.0"))
	assert.ElementsMatch(t, []string{"five", "six"}, titles("/api/student/opportunities?type=internship"))
	assert.Len(t, titles("/api/student/opportunities"), 4)

	code, body := a.json(http.MethodGet, "/api/student/opportunities?min_cgpa=abc", studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid min_cgpa value", body["error"])
}

func TestAdminAndProfileEndpoints(t *testing.T) {
	a := newAPI(t)
	adminToken := a.login("admin@alumni.com", "admin123")
	a.register(map[string]interface{}{"name": "Jane", "email": "jane@x.com", "password": "pw123", "role": "student", "cgpa": 8.5})
	studentToken := a.login("jane@x.com", "pw123")

	code, body := a.json(http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["total_users"])
	assert.Equal(t, float64(1), body["student_count"])

	code, body = a.json(http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	users := body["users"].([]interface{})
	require.Len(t, users, 2)
	adminID := int64(users[0].(map[string]interface{})["id"].(float64))
	janeID := int64(users[1].(map[string]interface{})["id"].(float64))

	code, body = a.json(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", adminID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Cannot delete your own account", body["error"])

	code, body = a.json(http.MethodGet, fmt.Sprintf("/api/profile?type=student&id=%d", janeID), studentToken, nil)
	require.Equal(t, http.StatusOK, code, body)
	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, "Jane", profile["name"])
	assert.Equal(t, 8.5, profile["cgpa"])

	code, body = a.json(http.MethodGet, "/api/profile?type=student&id=abc", studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid parameters", body["error"])

	code, _ = a.json(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", janeID), adminToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = a.json(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
}
