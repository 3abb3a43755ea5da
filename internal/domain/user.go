package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. The role is fixed at
// registration and gates every role-restricted write.
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleJobseeker Role = "jobseeker"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleRecruiter:
		return RoleRecruiter, nil
	case RoleJobseeker:
		return RoleJobseeker, nil
	default:
		return "", fmt.Errorf("role must be either 'recruiter' or 'jobseeker', got %q", value)
	}
}

// User represents an account. Skills is denormalized from the
// user_skills join and is never nil on a loaded user.
type User struct {
	ID                 int64
	Name               string
	Email              string
	PasswordHash       string
	PhoneNumber        string
	Role               Role
	Bio                string
	Resume             string
	ResumePublicID     string
	ProfilePic         string
	ProfilePicPublicID string
	Subscription       string
	Skills             []string
	CreatedAt          time.Time
}

// Skill is a shared tag, created lazily the first time any account
// references its name.
type Skill struct {
	ID   int64
	Name string
}
