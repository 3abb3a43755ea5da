package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/domain"
	"github.com/imanshadilshan/work-ora/internal/mail"
	"github.com/imanshadilshan/work-ora/internal/relay"
	"github.com/imanshadilshan/work-ora/internal/repository"
)

const initialApplicationStatus = "submitted"

// JobService covers companies, job postings and applications.
type JobService struct {
	companies    repository.CompanyRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	uploads      relay.Uploader
	notifier     relay.Notifier
	snowflake    *snowflake.Node
	logger       *zap.Logger
	tracer       trace.Tracer
}

// NewJobService wires dependencies.
func NewJobService(companies repository.CompanyRepository, jobs repository.JobRepository, applications repository.ApplicationRepository, uploads relay.Uploader, notifier relay.Notifier, node *snowflake.Node, logger *zap.Logger) *JobService {
	return &JobService{
		companies:    companies,
		jobs:         jobs,
		applications: applications,
		uploads:      uploads,
		notifier:     notifier,
		snowflake:    node,
		logger:       logger,
		tracer:       otel.Tracer("github.com/imanshadilshan/work-ora/internal/service"),
	}
}

// CompanyInput is the create-company payload; Logo is the raw file.
type CompanyInput struct {
	Name            string
	Description     string
	Website         string
	Logo            []byte
	LogoContentType string
}

// CreateCompany registers a company owned by the acting recruiter.
func (s *JobService) CreateCompany(ctx context.Context, actor domain.User, in CompanyInput) (CompanyView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.CreateCompany")
	defer span.End()

	if actor.Role != domain.RoleRecruiter {
		return CompanyView{}, forbidden("Only recruiters can create companies")
	}
	if in.Name == "" || in.Description == "" || in.Website == "" {
		return CompanyView{}, badRequest("Please provide all required fields: name, description, website")
	}

	exists, err := s.companies.NameExists(ctx, in.Name)
	if err != nil {
		span.RecordError(err)
		return CompanyView{}, fmt.Errorf("check company name: %w", err)
	}
	if exists {
		return CompanyView{}, conflict(fmt.Sprintf("Company with this name: %s already exists", in.Name))
	}

	if len(in.Logo) == 0 {
		return CompanyView{}, badRequest("Company logo file is required")
	}
	asset, err := s.uploads.Upload(ctx, in.Logo, in.LogoContentType, "")
	if err != nil {
		span.RecordError(err)
		return CompanyView{}, fmt.Errorf("upload company logo: %w", err)
	}

	created, err := s.companies.Create(ctx, domain.Company{
		ID:           s.snowflake.Generate().Int64(),
		Name:         in.Name,
		Description:  in.Description,
		Website:      in.Website,
		Logo:         asset.URL,
		LogoPublicID: asset.PublicID,
		RecruiterID:  actor.ID,
	})
	if err != nil {
		span.RecordError(err)
		return CompanyView{}, fmt.Errorf("create company: %w", err)
	}

	s.logger.Info("company created", zap.Int64("company_id", created.ID), zap.Int64("recruiter_id", actor.ID))
	return NewCompanyView(created), nil
}

// DeleteCompany removes a company the actor owns; its jobs cascade.
// A company owned by someone else is indistinguishable from a missing
// one.
func (s *JobService) DeleteCompany(ctx context.Context, actor domain.User, companyID int64) error {
	ctx, span := s.tracer.Start(ctx, "JobService.DeleteCompany")
	defer span.End()

	if _, err := s.companies.GetOwned(ctx, companyID, actor.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("Company not found or you do not have permission to delete it")
		}
		span.RecordError(err)
		return fmt.Errorf("load company: %w", err)
	}

	if err := s.companies.Delete(ctx, companyID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete company: %w", err)
	}

	s.logger.Info("company deleted", zap.Int64("company_id", companyID), zap.Int64("recruiter_id", actor.ID))
	return nil
}

// MyCompanies lists companies owned by the acting recruiter.
func (s *JobService) MyCompanies(ctx context.Context, actor domain.User) ([]CompanyView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.MyCompanies")
	defer span.End()

	companies, err := s.companies.ListByRecruiter(ctx, actor.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return NewCompanyViews(companies), nil
}

// GetCompany loads a company by id. Public.
func (s *JobService) GetCompany(ctx context.Context, companyID int64) (CompanyView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.GetCompany")
	defer span.End()

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CompanyView{}, notFound("Company not found")
		}
		span.RecordError(err)
		return CompanyView{}, fmt.Errorf("load company: %w", err)
	}
	return NewCompanyView(company), nil
}

// JobInput is the create/update payload for a job posting.
type JobInput struct {
	Title        string
	Description  string
	Salary       int64
	Location     string
	Role         string
	JobType      string
	WorkLocation string
	CompanyID    int64
	Openings     int
	IsActive     bool
}

// CreateJob posts a job under a company the actor owns.
func (s *JobService) CreateJob(ctx context.Context, actor domain.User, in JobInput) (JobView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.CreateJob")
	defer span.End()

	if actor.Role != domain.RoleRecruiter {
		return JobView{}, forbidden("Only recruiters can create jobs")
	}
	if in.Title == "" || in.Description == "" || in.Salary == 0 || in.Location == "" || in.Role == "" || in.Openings == 0 {
		return JobView{}, badRequest("Please provide all required fields")
	}

	if _, err := s.companies.GetOwned(ctx, in.CompanyID, actor.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobView{}, notFound("Company not found")
		}
		span.RecordError(err)
		return JobView{}, fmt.Errorf("load company: %w", err)
	}

	created, err := s.jobs.Create(ctx, domain.Job{
		ID:           s.snowflake.Generate().Int64(),
		Title:        in.Title,
		Description:  in.Description,
		Salary:       in.Salary,
		Location:     in.Location,
		Role:         in.Role,
		JobType:      in.JobType,
		WorkLocation: in.WorkLocation,
		CompanyID:    in.CompanyID,
		PostedBy:     actor.ID,
		Openings:     in.Openings,
		IsActive:     true,
	})
	if err != nil {
		span.RecordError(err)
		return JobView{}, fmt.Errorf("create job: %w", err)
	}

	s.logger.Info("job created", zap.Int64("job_id", created.ID), zap.Int64("recruiter_id", actor.ID))
	return NewJobView(created), nil
}

// UpdateJob replaces a posting's fields. Only the posting recruiter
// may update it.
func (s *JobService) UpdateJob(ctx context.Context, actor domain.User, jobID int64, in JobInput) (JobView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.UpdateJob")
	defer span.End()

	if actor.Role != domain.RoleRecruiter {
		return JobView{}, forbidden("Only recruiters can update jobs")
	}

	existing, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobView{}, notFound("Job not found")
		}
		span.RecordError(err)
		return JobView{}, fmt.Errorf("load job: %w", err)
	}
	if existing.PostedBy != actor.ID {
		return JobView{}, forbidden("You are not allowed to update this job")
	}

	updated, err := s.jobs.Update(ctx, domain.Job{
		ID:           jobID,
		Title:        in.Title,
		Description:  in.Description,
		Salary:       in.Salary,
		Location:     in.Location,
		Role:         in.Role,
		JobType:      in.JobType,
		WorkLocation: in.WorkLocation,
		CompanyID:    in.CompanyID,
		Openings:     in.Openings,
		IsActive:     in.IsActive,
	})
	if err != nil {
		span.RecordError(err)
		return JobView{}, fmt.Errorf("update job: %w", err)
	}

	return NewJobView(updated), nil
}

// SearchJobs lists active jobs matching the optional filters, newest
// first. Public.
func (s *JobService) SearchJobs(ctx context.Context, title, location string) ([]JobView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.SearchJobs")
	defer span.End()

	jobs, err := s.jobs.Search(ctx, title, location)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return NewJobViews(jobs), nil
}

// GetJob loads a posting by id. Public.
func (s *JobService) GetJob(ctx context.Context, jobID int64) (JobView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.GetJob")
	defer span.End()

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobView{}, notFound("Job not found")
		}
		span.RecordError(err)
		return JobView{}, fmt.Errorf("load job: %w", err)
	}
	return NewJobView(job), nil
}

// Apply records a jobseeker's application to an active job.
func (s *JobService) Apply(ctx context.Context, actor domain.User, jobID int64) (ApplicationView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.Apply")
	defer span.End()

	if actor.Role != domain.RoleJobseeker {
		return ApplicationView{}, forbidden("Only jobseekers can apply to jobs")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ApplicationView{}, notFound("Job not found")
		}
		span.RecordError(err)
		return ApplicationView{}, fmt.Errorf("load job: %w", err)
	}
	if !job.IsActive {
		return ApplicationView{}, badRequest("Job is no longer active")
	}

	created, err := s.applications.Create(ctx, domain.Application{
		ID:             s.snowflake.Generate().Int64(),
		JobID:          jobID,
		ApplicantEmail: actor.Email,
		Status:         initialApplicationStatus,
	})
	if err != nil {
		span.RecordError(err)
		return ApplicationView{}, fmt.Errorf("create application: %w", err)
	}

	s.logger.Info("application submitted", zap.Int64("job_id", jobID), zap.Int64("applicant_id", actor.ID))
	return NewApplicationView(created), nil
}

// Applications lists a job's applications for the posting recruiter.
func (s *JobService) Applications(ctx context.Context, actor domain.User, jobID int64) ([]ApplicationView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.Applications")
	defer span.End()

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("Job not found")
		}
		span.RecordError(err)
		return nil, fmt.Errorf("load job: %w", err)
	}
	if job.PostedBy != actor.ID {
		return nil, forbidden("You are not allowed to view applications for this job")
	}

	apps, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return NewApplicationViews(apps), nil
}

// UpdateApplicationStatus sets the status and enqueues one
// notification to the applicant. Only the posting recruiter may do
// this; an unauthorized attempt enqueues nothing.
func (s *JobService) UpdateApplicationStatus(ctx context.Context, actor domain.User, applicationID int64, status string) (ApplicationView, error) {
	ctx, span := s.tracer.Start(ctx, "JobService.UpdateApplicationStatus")
	defer span.End()

	if status == "" {
		return ApplicationView{}, badRequest("Status is required")
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ApplicationView{}, notFound("Application not found")
		}
		span.RecordError(err)
		return ApplicationView{}, fmt.Errorf("load application: %w", err)
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		span.RecordError(err)
		return ApplicationView{}, fmt.Errorf("load job: %w", err)
	}
	if job.PostedBy != actor.ID {
		return ApplicationView{}, forbidden("You are not allowed to update this application")
	}

	updated, err := s.applications.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		span.RecordError(err)
		return ApplicationView{}, fmt.Errorf("update application: %w", err)
	}

	s.notifier.Enqueue(ctx, relay.Envelope{
		To:      updated.ApplicantEmail,
		Subject: fmt.Sprintf("Application Update - %s", job.Title),
		HTML:    mail.ApplicationStatusHTML(job.Title, updated.Status),
	})

	s.logger.Info("application status updated",
		zap.Int64("application_id", applicationID),
		zap.String("status", updated.Status),
	)
	return NewApplicationView(updated), nil
}
