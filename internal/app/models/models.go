package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleAlumni  RoleType = "alumni"
	RoleStudent RoleType = "student"
)

// Valid reports whether r is one of the known roles
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleAlumni, RoleStudent:
		return true
	}
	return false
}

// HasProfile reports whether users of this role own a profile row
func (r RoleType) HasProfile() bool {
	return r == RoleAlumni || r == RoleStudent
}

// OpportunityType is the kind of posting an alumni publishes
type OpportunityType string

const (
	OpportunityInternship   OpportunityType = "internship"
	OpportunityScholarship  OpportunityType = "scholarship"
	OpportunityMentorship   OpportunityType = "mentorship"
	OpportunitySuccessStory OpportunityType = "success_story"
)

// Valid reports whether t is one of the known opportunity types
func (t OpportunityType) Valid() bool {
	switch t {
	case OpportunityInternship, OpportunityScholarship, OpportunityMentorship, OpportunitySuccessStory:
		return true
	}
	return false
}

// ApplicationStatus tracks an application through triage
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusDeclined ApplicationStatus = "declined"
)

// Valid reports whether s is one of the known statuses
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}
