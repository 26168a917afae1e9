package dto

import (
	"github.com/yigit/alumnilink/internal/app/models"
)

// ContactPatch carries the contact keys shared by both role profile updates
type ContactPatch struct {
	Phone      Optional[string] `json:"phone" validate:"omitempty,max=50" swaggertype:"string"`
	Location   Optional[string] `json:"location" validate:"omitempty,max=100" swaggertype:"string"`
	Bio        Optional[string] `json:"bio" swaggertype:"string"`
	LinkedIn   Optional[string] `json:"linkedin" validate:"omitempty,max=255" swaggertype:"string"`
	Github     Optional[string] `json:"github" validate:"omitempty,max=255" swaggertype:"string"`
	ProfilePic Optional[string] `json:"profile_pic" validate:"omitempty,max=255" swaggertype:"string"`
}

// ApplyTo merges the supplied keys into c
func (p ContactPatch) ApplyTo(c *models.Contact) {
	p.Phone.Apply(&c.Phone)
	p.Location.Apply(&c.Location)
	p.Bio.Apply(&c.Bio)
	p.LinkedIn.Apply(&c.LinkedIn)
	p.Github.Apply(&c.Github)
	p.ProfilePic.Apply(&c.ProfilePic)
}

// UpdateAlumniProfileRequest merges the supplied keys into the caller's alumni profile
type UpdateAlumniProfileRequest struct {
	Name       Optional[string] `json:"name" validate:"omitempty,max=100" swaggertype:"string"`
	Occupation Optional[string] `json:"occupation" validate:"omitempty,max=100" swaggertype:"string"`
	Company    Optional[string] `json:"company" validate:"omitempty,max=100" swaggertype:"string"`
	Domain     Optional[string] `json:"domain" validate:"omitempty,max=100" swaggertype:"string"`
	ContactPatch
}

// UpdateStudentProfileRequest merges the supplied keys into the caller's student profile
type UpdateStudentProfileRequest struct {
	Name     Optional[string]  `json:"name" validate:"omitempty,max=100" swaggertype:"string"`
	CGPA     Optional[float64] `json:"cgpa" swaggertype:"number"`
	Category Optional[string]  `json:"category" validate:"omitempty,max=50" swaggertype:"string"`
	ContactPatch
}

// ProfileResponse wraps a role profile
type ProfileResponse struct {
	Profile interface{} `json:"profile"`
}

// ProfileMessageResponse is returned by profile updates
type ProfileMessageResponse struct {
	Message string      `json:"message" example:"Profile updated successfully"`
	Profile interface{} `json:"profile"`
}

// ProfileQuery selects a profile on the generic profile endpoint
type ProfileQuery struct {
	Type string `form:"type" example:"student"`
	ID   int64  `form:"id" example:"2"`
}

// UpdatePublicProfileRequest is the body of the generic profile update. Keys
// that do not apply to the profile kind are ignored.
type UpdatePublicProfileRequest struct {
	Name          Optional[string]  `json:"name" validate:"omitempty,max=100" swaggertype:"string"`
	Email         Optional[string]  `json:"email" validate:"omitempty,max=120" swaggertype:"string"`
	Phone         Optional[string]  `json:"phone" validate:"omitempty,max=50" swaggertype:"string"`
	Location      Optional[string]  `json:"location" validate:"omitempty,max=100" swaggertype:"string"`
	Bio           Optional[string]  `json:"bio" swaggertype:"string"`
	LinkedIn      Optional[string]  `json:"linkedIn" validate:"omitempty,max=255" swaggertype:"string"`
	Github        Optional[string]  `json:"github" validate:"omitempty,max=255" swaggertype:"string"`
	ProfilePic    Optional[string]  `json:"profile_pic" validate:"omitempty,max=255" swaggertype:"string"`
	Occupation    Optional[string]  `json:"occupation" validate:"omitempty,max=100" swaggertype:"string"`
	Company       Optional[string]  `json:"company" validate:"omitempty,max=100" swaggertype:"string"`
	WorkingDomain Optional[string]  `json:"workingDomain" validate:"omitempty,max=100" swaggertype:"string"`
	CGPA          Optional[float64] `json:"cgpa" swaggertype:"number"`
	Category      Optional[string]  `json:"category" validate:"omitempty,max=50" swaggertype:"string"`
}

// Contact returns the contact keys of the generic update
func (r UpdatePublicProfileRequest) Contact() ContactPatch {
	return ContactPatch{
		Phone:      r.Phone,
		Location:   r.Location,
		Bio:        r.Bio,
		LinkedIn:   r.LinkedIn,
		Github:     r.Github,
		ProfilePic: r.ProfilePic,
	}
}

// PublicProfileBase holds the keys every generic profile carries
type PublicProfileBase struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Location   *string `json:"location"`
	Bio        *string `json:"bio"`
	LinkedIn   *string `json:"linkedIn"`
	Github     *string `json:"github"`
	ProfilePic *string `json:"profile_pic"`
}

// PublicAlumniProfile is the flattened alumni profile of the generic endpoint
type PublicAlumniProfile struct {
	PublicProfileBase
	Occupation    *string `json:"occupation"`
	Company       *string `json:"company"`
	WorkingDomain *string `json:"workingDomain"`
}

// PublicStudentProfile is the flattened student profile of the generic endpoint
type PublicStudentProfile struct {
	PublicProfileBase
	CGPA     *float64 `json:"cgpa"`
	Category *string  `json:"category"`
}

// PublicProfileEnvelope wraps the generic profile
type PublicProfileEnvelope struct {
	Message string      `json:"message,omitempty" example:"Profile updated successfully"`
	Profile interface{} `json:"profile"`
}

func newPublicProfileBase(u *models.User, id int64, c models.Contact) PublicProfileBase {
	return PublicProfileBase{
		ID:         id,
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      c.Phone,
		Location:   c.Location,
		Bio:        c.Bio,
		LinkedIn:   c.LinkedIn,
		Github:     c.Github,
		ProfilePic: c.ProfilePic,
	}
}

// NewPublicProfileResponse flattens a user and whichever profile it carries
func NewPublicProfileResponse(u *models.UserWithProfile) interface{} {
	switch {
	case u.AlumniProfile != nil:
		p := u.AlumniProfile
		return PublicAlumniProfile{
			PublicProfileBase: newPublicProfileBase(u.User, p.ID, p.Contact),
			Occupation:        p.Occupation,
			Company:           p.Company,
			WorkingDomain:     p.Domain,
		}
	case u.StudentProfile != nil:
		p := u.StudentProfile
		return PublicStudentProfile{
			PublicProfileBase: newPublicProfileBase(u.User, p.ID, p.Contact),
			CGPA:              p.CGPA,
			Category:          p.Category,
		}
	}
	return newPublicProfileBase(u.User, 0, models.Contact{})
}
