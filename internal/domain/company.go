package domain

import "time"

// Company is owned by exactly one recruiter account. The name is
// globally unique.
type Company struct {
	ID           int64
	Name         string
	Description  string
	Website      string
	Logo         string
	LogoPublicID string
	RecruiterID  int64
	CreatedAt    time.Time
}
