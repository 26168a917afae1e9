package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumnilink/internal/app/models"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var req UpdateOpportunityRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","deadline":null,"min_cgpa":6.5}`), &req))

	assert.True(t, req.Title.Set)
	assert.Equal(t, "New", *req.Title.Value)
	assert.True(t, req.Deadline.Set)
	assert.Nil(t, req.Deadline.Value)
	assert.Equal(t, 6.5, *req.MinCGPA.Value)
	assert.False(t, req.Company.Set)
}

func TestOptionalApply(t *testing.T) {
	old := "old"
	field := &old

	Optional[string]{}.Apply(&field)
	assert.Equal(t, "old", *field)

	Some("new").Apply(&field)
	assert.Equal(t, "new", *field)

	Null[string]().Apply(&field)
	assert.Nil(t, field)
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var req UpdateStudentProfileRequest
	assert.Error(t, json.Unmarshal([]byte(`{"cgpa":"high"}`), &req))
}

func TestContactPatchIsPromoted(t *testing.T) {
	var req UpdateAlumniProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"linkedin":"in/john","bio":null}`), &req))

	c := models.Contact{Bio: strPtr("old bio")}
	req.ApplyTo(&c)
	assert.Equal(t, "in/john", *c.LinkedIn)
	assert.Nil(t, c.Bio)
}

func TestOpportunityResponseFormatsDeadline(t *testing.T) {
	d := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	resp := NewOpportunityResponse(&models.Opportunity{ID: 1, Type: models.OpportunityInternship, Deadline: &d})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"deadline":"2026-12-31"`)
	assert.Contains(t, string(raw), `"alumni_name":null`)
}

func TestUserResponseOmitsMissingProfile(t *testing.T) {
	u := &models.User{ID: 1, Name: "Admin", Email: "a@x.com", Role: models.RoleAdmin}
	raw, err := json.Marshal(NewUserWithProfileResponse(&models.UserWithProfile{User: u}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "profile")

	withProfile := NewUserWithProfileResponse(&models.UserWithProfile{
		User:           u,
		StudentProfile: &models.StudentProfile{ID: 4, UserID: 1, CGPA: floatPtr(8.5)},
	})
	raw, err = json.Marshal(withProfile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"profile":{"id":4,"user_id":1,"cgpa":8.5`)
}

func TestPublicProfileUsesOriginalKeys(t *testing.T) {
	u := &models.User{ID: 2, Name: "John", Email: "john@x.com", Role: models.RoleAlumni}
	p := &models.AlumniProfile{ID: 9, UserID: 2, Domain: strPtr("backend")}
	p.LinkedIn = strPtr("in/john")

	raw, err := json.Marshal(NewPublicProfileResponse(&models.UserWithProfile{User: u, AlumniProfile: p}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"workingDomain":"backend"`)
	assert.Contains(t, string(raw), `"linkedIn":"in/john"`)
	assert.Contains(t, string(raw), `"company":null`)
	assert.NotContains(t, string(raw), "cgpa")
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }
