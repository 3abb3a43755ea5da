package domain

import "time"

// Job belongs to one company and one posting recruiter. Only the
// posting recruiter may update it.
type Job struct {
	ID           int64
	Title        string
	Description  string
	Salary       int64
	Location     string
	Role         string
	JobType      string
	WorkLocation string
	CompanyID    int64
	PostedBy     int64
	Openings     int
	IsActive     bool
	CreatedAt    time.Time
}

// Application records a jobseeker's interest in a job. Status changes
// trigger a notification to the applicant.
type Application struct {
	ID             int64
	JobID          int64
	ApplicantEmail string
	Status         string
	CreatedAt      time.Time
}
