package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imanshadilshan/work-ora/internal/domain"
)

// PostgresCompanyRepo implements CompanyRepository.
type PostgresCompanyRepo struct {
	db *pgxpool.Pool
}

func NewPostgresCompanyRepo(pool *pgxpool.Pool) *PostgresCompanyRepo {
	return &PostgresCompanyRepo{db: pool}
}

func (r *PostgresCompanyRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE name = $1)`, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check company name: %w", err)
	}
	return exists, nil
}

const insertCompanySQL = `INSERT INTO companies (company_id, name, description, website, logo, logo_public_id, recruiter_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING company_id, name, description, website, logo, logo_public_id, recruiter_id, created_at`

func (r *PostgresCompanyRepo) Create(ctx context.Context, company domain.Company) (domain.Company, error) {
	row := r.db.QueryRow(ctx, insertCompanySQL,
		company.ID,
		company.Name,
		company.Description,
		company.Website,
		company.Logo,
		company.LogoPublicID,
		company.RecruiterID,
	)
	created, err := scanCompany(row)
	if err != nil {
		return domain.Company{}, fmt.Errorf("create company: %w", err)
	}
	return created, nil
}

const selectCompanySQL = `SELECT company_id, name, description, website, logo, logo_public_id, recruiter_id, created_at
FROM companies`

func (r *PostgresCompanyRepo) GetByID(ctx context.Context, companyID int64) (domain.Company, error) {
	row := r.db.QueryRow(ctx, selectCompanySQL+` WHERE company_id = $1`, companyID)
	company, err := scanCompany(row)
	if err != nil {
		return domain.Company{}, fmt.Errorf("get company: %w", err)
	}
	return company, nil
}

func (r *PostgresCompanyRepo) GetOwned(ctx context.Context, companyID, recruiterID int64) (domain.Company, error) {
	row := r.db.QueryRow(ctx, selectCompanySQL+` WHERE company_id = $1 AND recruiter_id = $2`, companyID, recruiterID)
	company, err := scanCompany(row)
	if err != nil {
		return domain.Company{}, fmt.Errorf("get owned company: %w", err)
	}
	return company, nil
}

func (r *PostgresCompanyRepo) ListByRecruiter(ctx context.Context, recruiterID int64) ([]domain.Company, error) {
	rows, err := r.db.Query(ctx, selectCompanySQL+` WHERE recruiter_id = $1 ORDER BY created_at DESC`, recruiterID)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// Delete removes the company; jobs cascade via the schema FK.
func (r *PostgresCompanyRepo) Delete(ctx context.Context, companyID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM companies WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func scanCompany(row pgx.Row) (domain.Company, error) {
	var company domain.Company
	if err := row.Scan(
		&company.ID,
		&company.Name,
		&company.Description,
		&company.Website,
		&company.Logo,
		&company.LogoPublicID,
		&company.RecruiterID,
		&company.CreatedAt,
	); err != nil {
		return domain.Company{}, err
	}
	return company, nil
}
