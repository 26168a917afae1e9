package models

import "time"

// Opportunity defines the 'opportunities' table.
// AlumniName is filled from a join and is nil once the author is gone.
type Opportunity struct {
	ID           int64           `db:"id"`
	AlumniID     int64           `db:"alumni_id"`
	Type         OpportunityType `db:"type"`
	Title        string          `db:"title"`
	Description  string          `db:"description"`
	MinCGPA      *float64        `db:"min_cgpa"`
	Category     *string         `db:"category"`
	Company      *string         `db:"company"`
	Location     *string         `db:"location"`
	Duration     *string         `db:"duration"`
	Stipend      *string         `db:"stipend"`
	Requirements *string         `db:"requirements"`
	Deadline     *time.Time      `db:"deadline"`
	CreatedAt    time.Time       `db:"created_at"`
	AlumniName   *string
}

// OpportunityFilter holds the conjunctive browse filters; nil fields are ignored
type OpportunityFilter struct {
	Type     *OpportunityType
	Category *string
	// MaxMinCGPA keeps opportunities whose min_cgpa is at most this value or unset
	MaxMinCGPA *float64
}

// Application defines the 'applications' table plus its display joins
type Application struct {
	ID               int64             `db:"id"`
	StudentID        int64             `db:"student_id"`
	OpportunityID    int64             `db:"opportunity_id"`
	Status           ApplicationStatus `db:"status"`
	ResumeFile       *string           `db:"resume_file"`
	AppliedAt        time.Time         `db:"applied_at"`
	StudentName      *string
	OpportunityTitle *string
}
