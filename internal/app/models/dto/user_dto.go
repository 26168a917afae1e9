package dto

import (
	"time"

	"github.com/yigit/alumnilink/internal/app/models"
)

// UserResponse represents a user; Profile is only present for alumni and
// student accounts that have one.
type UserResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      string      `json:"role" example:"student"`
	CreatedAt time.Time   `json:"created_at"`
	Profile   interface{} `json:"profile,omitempty"`
}

// AlumniProfileResponse represents the alumni_profiles row
type AlumniProfileResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Occupation *string   `json:"occupation"`
	Company    *string   `json:"company"`
	Domain     *string   `json:"domain"`
	Phone      *string   `json:"phone"`
	Location   *string   `json:"location"`
	Bio        *string   `json:"bio"`
	LinkedIn   *string   `json:"linkedin"`
	Github     *string   `json:"github"`
	ProfilePic *string   `json:"profile_pic"`
	CreatedAt  time.Time `json:"created_at"`
	// User is filled by the role profile endpoints only
	User *UserResponse `json:"user,omitempty"`
}

// StudentProfileResponse represents the student_profiles row
type StudentProfileResponse struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id"`
	CGPA       *float64      `json:"cgpa"`
	Category   *string       `json:"category"`
	Phone      *string       `json:"phone"`
	Location   *string       `json:"location"`
	Bio        *string       `json:"bio"`
	LinkedIn   *string       `json:"linkedin"`
	Github     *string       `json:"github"`
	ProfilePic *string       `json:"profile_pic"`
	CreatedAt  time.Time     `json:"created_at"`
	User       *UserResponse `json:"user,omitempty"`
}

// UserListResponse is the admin user listing
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// StatsResponse holds the admin dashboard counters
type StatsResponse struct {
	TotalUsers   int64 `json:"total_users"`
	AdminCount   int64 `json:"admin_count"`
	AlumniCount  int64 `json:"alumni_count"`
	StudentCount int64 `json:"student_count"`
}

// NewUserResponse maps a user without its profile
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// NewUserWithProfileResponse maps a user and attaches whichever profile it carries
func NewUserWithProfileResponse(u *models.UserWithProfile) UserResponse {
	resp := NewUserResponse(u.User)
	switch {
	case u.AlumniProfile != nil:
		resp.Profile = NewAlumniProfileResponse(u.AlumniProfile)
	case u.StudentProfile != nil:
		resp.Profile = NewStudentProfileResponse(u.StudentProfile)
	}
	return resp
}

// NewAlumniProfileResponse maps an alumni profile
func NewAlumniProfileResponse(p *models.AlumniProfile) *AlumniProfileResponse {
	return &AlumniProfileResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		Occupation: p.Occupation,
		Company:    p.Company,
		Domain:     p.Domain,
		Phone:      p.Phone,
		Location:   p.Location,
		Bio:        p.Bio,
		LinkedIn:   p.LinkedIn,
		Github:     p.Github,
		ProfilePic: p.ProfilePic,
		CreatedAt:  p.CreatedAt,
	}
}

// NewStudentProfileResponse maps a student profile
func NewStudentProfileResponse(p *models.StudentProfile) *StudentProfileResponse {
	return &StudentProfileResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		CGPA:       p.CGPA,
		Category:   p.Category,
		Phone:      p.Phone,
		Location:   p.Location,
		Bio:        p.Bio,
		LinkedIn:   p.LinkedIn,
		Github:     p.Github,
		ProfilePic: p.ProfilePic,
		CreatedAt:  p.CreatedAt,
	}
}
