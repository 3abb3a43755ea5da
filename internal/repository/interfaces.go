package repository

import (
	"context"

	"github.com/imanshadilshan/work-ora/internal/domain"
)

// UserRepository exposes persistence for accounts. Loads always join
// the denormalized skill tags.
type UserRepository interface {
	GetByID(ctx context.Context, userID int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, phoneNumber, bio string) (domain.User, error)
	UpdateProfilePicture(ctx context.Context, userID int64, url, publicID string) (domain.User, error)
	UpdateResume(ctx context.Context, userID int64, url, publicID string) (domain.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// SkillRepository manages the account-skill association. Add runs the
// upsert transaction; it reports false when the association already
// existed.
type SkillRepository interface {
	Add(ctx context.Context, userID int64, name string) (added bool, err error)
	Remove(ctx context.Context, userID int64, name string) (removed bool, err error)
}

// CompanyRepository exposes persistence for companies.
type CompanyRepository interface {
	NameExists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, company domain.Company) (domain.Company, error)
	GetByID(ctx context.Context, companyID int64) (domain.Company, error)
	GetOwned(ctx context.Context, companyID, recruiterID int64) (domain.Company, error)
	ListByRecruiter(ctx context.Context, recruiterID int64) ([]domain.Company, error)
	Delete(ctx context.Context, companyID int64) error
}

// JobRepository exposes persistence for job postings.
type JobRepository interface {
	Create(ctx context.Context, job domain.Job) (domain.Job, error)
	Update(ctx context.Context, job domain.Job) (domain.Job, error)
	GetByID(ctx context.Context, jobID int64) (domain.Job, error)
	Search(ctx context.Context, title, location string) ([]domain.Job, error)
}

// ApplicationRepository exposes persistence for job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app domain.Application) (domain.Application, error)
	GetByID(ctx context.Context, applicationID int64) (domain.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, applicationID int64, status string) (domain.Application, error)
}
