package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imanshadilshan/work-ora/internal/domain"
)

// PostgresApplicationRepo implements ApplicationRepository.
type PostgresApplicationRepo struct {
	db *pgxpool.Pool
}

func NewPostgresApplicationRepo(pool *pgxpool.Pool) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: pool}
}

const applicationColumns = `application_id, job_id, applicant_email, status, created_at`

func (r *PostgresApplicationRepo) Create(ctx context.Context, app domain.Application) (domain.Application, error) {
	row := r.db.QueryRow(ctx, `
INSERT INTO applications (application_id, job_id, applicant_email, status)
VALUES ($1, $2, $3, $4)
RETURNING `+applicationColumns, app.ID, app.JobID, app.ApplicantEmail, app.Status)
	created, err := scanApplication(row)
	if err != nil {
		return domain.Application{}, fmt.Errorf("create application: %w", err)
	}
	return created, nil
}

func (r *PostgresApplicationRepo) GetByID(ctx context.Context, applicationID int64) (domain.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE application_id = $1`, applicationID)
	app, err := scanApplication(row)
	if err != nil {
		return domain.Application{}, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

func (r *PostgresApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (r *PostgresApplicationRepo) UpdateStatus(ctx context.Context, applicationID int64, status string) (domain.Application, error) {
	row := r.db.QueryRow(ctx, `
UPDATE applications SET status = $2 WHERE application_id = $1
RETURNING `+applicationColumns, applicationID, status)
	updated, err := scanApplication(row)
	if err != nil {
		return domain.Application{}, fmt.Errorf("update application status: %w", err)
	}
	return updated, nil
}

func scanApplication(row pgx.Row) (domain.Application, error) {
	var app domain.Application
	if err := row.Scan(&app.ID, &app.JobID, &app.ApplicantEmail, &app.Status, &app.CreatedAt); err != nil {
		return domain.Application{}, err
	}
	return app, nil
}
