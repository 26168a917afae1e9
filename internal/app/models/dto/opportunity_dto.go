package dto

import (
	"time"

	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/pkg/helpers"
)

// CreateOpportunityRequest represents a new posting
type CreateOpportunityRequest struct {
	Type         string   `json:"type" validate:"notblank,opptype" example:"internship"`
	Title        string   `json:"title" validate:"notblank,max=200" example:"Backend intern"`
	Description  string   `json:"description" validate:"notblank"`
	MinCGPA      *float64 `json:"min_cgpa" example:"7"`
	Category     *string  `json:"category" validate:"omitempty,max=50"`
	Company      *string  `json:"company" validate:"omitempty,max=100"`
	Location     *string  `json:"location" validate:"omitempty,max=100"`
	Duration     *string  `json:"duration" validate:"omitempty,max=50"`
	Stipend      *string  `json:"stipend" validate:"omitempty,max=100"`
	Requirements *string  `json:"requirements"`
	// Deadline uses the YYYY-MM-DD layout
	Deadline *string `json:"deadline" example:"2026-12-31"`
}

// UpdateOpportunityRequest is a partial update; absent keys are left untouched
type UpdateOpportunityRequest struct {
	Type         Optional[string]  `json:"type" swaggertype:"string"`
	Title        Optional[string]  `json:"title" validate:"omitempty,max=200" swaggertype:"string"`
	Description  Optional[string]  `json:"description" swaggertype:"string"`
	MinCGPA      Optional[float64] `json:"min_cgpa" swaggertype:"number"`
	Category     Optional[string]  `json:"category" validate:"omitempty,max=50" swaggertype:"string"`
	Company      Optional[string]  `json:"company" validate:"omitempty,max=100" swaggertype:"string"`
	Location     Optional[string]  `json:"location" validate:"omitempty,max=100" swaggertype:"string"`
	Duration     Optional[string]  `json:"duration" validate:"omitempty,max=50" swaggertype:"string"`
	Stipend      Optional[string]  `json:"stipend" validate:"omitempty,max=100" swaggertype:"string"`
	Requirements Optional[string]  `json:"requirements" swaggertype:"string"`
	Deadline     Optional[string]  `json:"deadline" swaggertype:"string"`
}

// UpdateApplicationStatusRequest changes the triage status of an application
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"notblank,appstatus" example:"accepted"`
}

// OpportunityResponse represents an opportunity with its author's name
type OpportunityResponse struct {
	ID           int64     `json:"id"`
	AlumniID     int64     `json:"alumni_id"`
	Type         string    `json:"type" example:"internship"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	MinCGPA      *float64  `json:"min_cgpa"`
	Category     *string   `json:"category"`
	Company      *string   `json:"company"`
	Location     *string   `json:"location"`
	Duration     *string   `json:"duration"`
	Stipend      *string   `json:"stipend"`
	Requirements *string   `json:"requirements"`
	Deadline     *string   `json:"deadline" example:"2026-12-31"`
	CreatedAt    time.Time `json:"created_at"`
	AlumniName   *string   `json:"alumni_name"`
}

// OpportunityListResponse wraps a list of opportunities
type OpportunityListResponse struct {
	Opportunities []OpportunityResponse `json:"opportunities"`
}

// OpportunityMessageResponse is returned by create and update
type OpportunityMessageResponse struct {
	Message     string              `json:"message" example:"Opportunity created successfully"`
	Opportunity OpportunityResponse `json:"opportunity"`
}

// ApplicationResponse represents an application with its display names
type ApplicationResponse struct {
	ID               int64     `json:"id"`
	StudentID        int64     `json:"student_id"`
	OpportunityID    int64     `json:"opportunity_id"`
	Status           string    `json:"status" example:"pending"`
	ResumeFile       *string   `json:"resume_file"`
	AppliedAt        time.Time `json:"applied_at"`
	StudentName      *string   `json:"student_name"`
	OpportunityTitle *string   `json:"opportunity_title"`
}

// ApplicationListResponse wraps a list of applications
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// ApplicationMessageResponse is returned by apply and status updates
type ApplicationMessageResponse struct {
	Message     string              `json:"message" example:"Application submitted successfully"`
	Application ApplicationResponse `json:"application"`
}

// NewOpportunityResponse maps an opportunity
func NewOpportunityResponse(o *models.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:           o.ID,
		AlumniID:     o.AlumniID,
		Type:         string(o.Type),
		Title:        o.Title,
		Description:  o.Description,
		MinCGPA:      o.MinCGPA,
		Category:     o.Category,
		Company:      o.Company,
		Location:     o.Location,
		Duration:     o.Duration,
		Stipend:      o.Stipend,
		Requirements: o.Requirements,
		Deadline:     helpers.FormatDate(o.Deadline),
		CreatedAt:    o.CreatedAt,
		AlumniName:   o.AlumniName,
	}
}

// NewOpportunityListResponse maps a list of opportunities
func NewOpportunityListResponse(opps []*models.Opportunity) OpportunityListResponse {
	resp := OpportunityListResponse{Opportunities: make([]OpportunityResponse, 0, len(opps))}
	for _, o := range opps {
		resp.Opportunities = append(resp.Opportunities, NewOpportunityResponse(o))
	}
	return resp
}

// NewApplicationResponse maps an application
func NewApplicationResponse(a *models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:               a.ID,
		StudentID:        a.StudentID,
		OpportunityID:    a.OpportunityID,
		Status:           string(a.Status),
		ResumeFile:       a.ResumeFile,
		AppliedAt:        a.AppliedAt,
		StudentName:      a.StudentName,
		OpportunityTitle: a.OpportunityTitle,
	}
}

// NewApplicationListResponse maps a list of applications
func NewApplicationListResponse(apps []*models.Application) ApplicationListResponse {
	resp := ApplicationListResponse{Applications: make([]ApplicationResponse, 0, len(apps))}
	for _, a := range apps {
		resp.Applications = append(resp.Applications, NewApplicationResponse(a))
	}
	return resp
}

// OpportunityFilterQuery holds the browse filters of the student listing
type OpportunityFilterQuery struct {
	Type     string `form:"type" example:"internship"`
	Category string `form:"category"`
	// MinCGPA keeps opportunities whose min_cgpa is at most this value or unset
	MinCGPA string `form:"min_cgpa" example:"6.0"`
}
