package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
)

type sampleRequest struct {
	Name   string  `json:"name" validate:"notblank"`
	Email  string  `json:"email" validate:"required,email"`
	Role   string  `json:"role" validate:"required,role"`
	Type   string  `json:"type" validate:"omitempty,opptype"`
	Status string  `json:"status" validate:"omitempty,appstatus"`
	CGPA   float64 `json:"cgpa" validate:"gte=0"`
}

func valid() sampleRequest {
	return sampleRequest{Name: "John", Email: "john@x.com", Role: "alumni"}
}

func TestStructAccepts(t *testing.T) {
	assert.NoError(t, Struct(valid()))
}

func TestStructMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sampleRequest)
		want   string
	}{
		{"blank name", func(r *sampleRequest) { r.Name = "  " }, "name is required"},
		{"missing email", func(r *sampleRequest) { r.Email = "" }, "email is required"},
		{"bad email", func(r *sampleRequest) { r.Email = "nope" }, "Invalid email format"},
		{"bad role", func(r *sampleRequest) { r.Role = "teacher" }, "Invalid role. Must be admin, alumni, or student"},
		{"bad type", func(r *sampleRequest) { r.Type = "job" }, "Invalid opportunity type"},
		{"bad status", func(r *sampleRequest) { r.Status = "maybe" }, "Invalid status"},
		{"negative cgpa", func(r *sampleRequest) { r.CGPA = -1 }, "cgpa must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := Struct(req)
			assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestStructReportsRequiredFirst(t *testing.T) {
	req := valid()
	req.Email = "not-an-email"
	req.Role = ""

	err := Struct(req)
	assert.Equal(t, "role is required", err.Error())
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("jane@x.com"))
	assert.False(t, Email("jane"))
	assert.False(t, Email(""))
}

type patchRequest struct {
	Name dto.Optional[string] `json:"name" validate:"omitempty,max=5"`
}

func TestStructChecksOptionalValues(t *testing.T) {
	assert.NoError(t, Struct(patchRequest{}))
	assert.NoError(t, Struct(patchRequest{Name: dto.Null[string]()}))
	assert.NoError(t, Struct(patchRequest{Name: dto.Some("short")}))

	err := Struct(patchRequest{Name: dto.Some("too long")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "name must be at most 5 characters", apperrors.Message(err))
}

func TestMaxCountsCharacters(t *testing.T) {
	assert.NoError(t, Struct(patchRequest{Name: dto.Some("ééééé")}))
}
