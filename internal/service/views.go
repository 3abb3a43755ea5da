package service

import (
	"time"

	"github.com/imanshadilshan/work-ora/internal/domain"
)

// UserView is the sanitized account payload. The password hash never
// leaves the service layer.
type UserView struct {
	ID           int64       `json:"user_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PhoneNumber  string      `json:"phone_number"`
	Role         domain.Role `json:"role"`
	Bio          string      `json:"bio,omitempty"`
	Resume       string      `json:"resume,omitempty"`
	ProfilePic   string      `json:"profile_pic,omitempty"`
	Subscription string      `json:"subscription,omitempty"`
	Skills       []string    `json:"skills"`
	CreatedAt    time.Time   `json:"created_at"`
}

func NewUserView(user domain.User) UserView {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserView{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		Role:         user.Role,
		Bio:          user.Bio,
		Resume:       user.Resume,
		ProfilePic:   user.ProfilePic,
		Subscription: user.Subscription,
		Skills:       skills,
		CreatedAt:    user.CreatedAt,
	}
}

type CompanyView struct {
	ID          int64     `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	Logo        string    `json:"logo"`
	RecruiterID int64     `json:"recruiter_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCompanyView(company domain.Company) CompanyView {
	return CompanyView{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Website:     company.Website,
		Logo:        company.Logo,
		RecruiterID: company.RecruiterID,
		CreatedAt:   company.CreatedAt,
	}
}

func NewCompanyViews(companies []domain.Company) []CompanyView {
	views := make([]CompanyView, 0, len(companies))
	for _, company := range companies {
		views = append(views, NewCompanyView(company))
	}
	return views
}

type JobView struct {
	ID           int64     `json:"job_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Salary       int64     `json:"salary"`
	Location     string    `json:"location"`
	Role         string    `json:"role"`
	JobType      string    `json:"job_type"`
	WorkLocation string    `json:"work_location"`
	CompanyID    int64     `json:"company_id"`
	PostedBy     int64     `json:"posted_by_recruiter_id"`
	Openings     int       `json:"openings"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewJobView(job domain.Job) JobView {
	return JobView{
		ID:           job.ID,
		Title:        job.Title,
		Description:  job.Description,
		Salary:       job.Salary,
		Location:     job.Location,
		Role:         job.Role,
		JobType:      job.JobType,
		WorkLocation: job.WorkLocation,
		CompanyID:    job.CompanyID,
		PostedBy:     job.PostedBy,
		Openings:     job.Openings,
		IsActive:     job.IsActive,
		CreatedAt:    job.CreatedAt,
	}
}

func NewJobViews(jobs []domain.Job) []JobView {
	views := make([]JobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, NewJobView(job))
	}
	return views
}

type ApplicationView struct {
	ID             int64     `json:"application_id"`
	JobID          int64     `json:"job_id"`
	ApplicantEmail string    `json:"applicant_email"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewApplicationView(app domain.Application) ApplicationView {
	return ApplicationView{
		ID:             app.ID,
		JobID:          app.JobID,
		ApplicantEmail: app.ApplicantEmail,
		Status:         app.Status,
		CreatedAt:      app.CreatedAt,
	}
}

func NewApplicationViews(apps []domain.Application) []ApplicationView {
	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, NewApplicationView(app))
	}
	return views
}
