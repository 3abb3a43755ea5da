package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		role TEXT NOT NULL,
		bio TEXT,
		resume TEXT,
		resume_public_id TEXT,
		profile_pic TEXT,
		profile_pic_public_id TEXT,
		subscription TEXT NOT NULL DEFAULT 'free',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		skill_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS user_skills (
		user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		skill_id BIGINT NOT NULL REFERENCES skills(skill_id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, skill_id)
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		company_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		website TEXT NOT NULL,
		logo TEXT,
		logo_public_id TEXT,
		recruiter_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		job_id BIGINT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		salary BIGINT NOT NULL,
		location TEXT NOT NULL,
		role TEXT NOT NULL,
		job_type TEXT,
		work_location TEXT,
		company_id BIGINT NOT NULL REFERENCES companies(company_id) ON DELETE CASCADE,
		posted_by BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		openings INT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		application_id BIGINT PRIMARY KEY,
		job_id BIGINT NOT NULL REFERENCES jobs(job_id) ON DELETE CASCADE,
		applicant_email TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs (company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_job ON applications (job_id)`,
}

// EnsureSchema creates the tables on startup if they do not exist yet.
func EnsureSchema(lc fx.Lifecycle, pool *pgxpool.Pool, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return ensureSchema(ctx, pool, logger)
		},
	})
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	logger.Info("database schema ensured")
	return nil
}
