package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imanshadilshan/work-ora/internal/domain"
)

// PostgresJobRepo implements JobRepository.
type PostgresJobRepo struct {
	db *pgxpool.Pool
}

func NewPostgresJobRepo(pool *pgxpool.Pool) *PostgresJobRepo {
	return &PostgresJobRepo{db: pool}
}

const jobColumns = `job_id, title, description, salary, location, role, job_type, work_location, company_id, posted_by, openings, is_active, created_at`

const insertJobSQL = `INSERT INTO jobs (job_id, title, description, salary, location, role, job_type, work_location, company_id, posted_by, openings)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + jobColumns

func (r *PostgresJobRepo) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	row := r.db.QueryRow(ctx, insertJobSQL,
		job.ID,
		job.Title,
		job.Description,
		job.Salary,
		job.Location,
		job.Role,
		job.JobType,
		job.WorkLocation,
		job.CompanyID,
		job.PostedBy,
		job.Openings,
	)
	created, err := scanJob(row)
	if err != nil {
		return domain.Job{}, fmt.Errorf("create job: %w", err)
	}
	return created, nil
}

const updateJobSQL = `UPDATE jobs
SET title = $2, description = $3, salary = $4, location = $5, role = $6,
    job_type = $7, work_location = $8, company_id = $9, openings = $10, is_active = $11
WHERE job_id = $1
RETURNING ` + jobColumns

func (r *PostgresJobRepo) Update(ctx context.Context, job domain.Job) (domain.Job, error) {
	row := r.db.QueryRow(ctx, updateJobSQL,
		job.ID,
		job.Title,
		job.Description,
		job.Salary,
		job.Location,
		job.Role,
		job.JobType,
		job.WorkLocation,
		job.CompanyID,
		job.Openings,
		job.IsActive,
	)
	updated, err := scanJob(row)
	if err != nil {
		return domain.Job{}, fmt.Errorf("update job: %w", err)
	}
	return updated, nil
}

func (r *PostgresJobRepo) GetByID(ctx context.Context, jobID int64) (domain.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE job_id = $1`, jobID)
	job, err := scanJob(row)
	if err != nil {
		return domain.Job{}, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

const searchJobsSQL = `SELECT ` + jobColumns + `
FROM jobs
WHERE is_active = TRUE
  AND title ILIKE '%' || $1 || '%'
  AND location ILIKE '%' || $2 || '%'
ORDER BY created_at DESC`

// likeEscaper neutralizes LIKE metacharacters so filter text only ever
// matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// Search lists active jobs matching the optional case-insensitive
// substring filters. Empty filters match everything.
func (r *PostgresJobRepo) Search(ctx context.Context, title, location string) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, searchJobsSQL, escapeLikePattern(title), escapeLikePattern(location))
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Salary,
		&job.Location,
		&job.Role,
		&job.JobType,
		&job.WorkLocation,
		&job.CompanyID,
		&job.PostedBy,
		&job.Openings,
		&job.IsActive,
		&job.CreatedAt,
	); err != nil {
		return domain.Job{}, err
	}
	return job, nil
}
