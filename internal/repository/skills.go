package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSkillRepo implements SkillRepository.
type PostgresSkillRepo struct {
	db *pgxpool.Pool
}

func NewPostgresSkillRepo(pool *pgxpool.Pool) *PostgresSkillRepo {
	return &PostgresSkillRepo{db: pool}
}

// ErrUserNotFound is returned when a skill operation targets an
// account that does not exist.
var ErrUserNotFound = errors.New("user not found")

// Add upserts the skill by name and associates it with the account
// inside one transaction. A duplicate association is not an error; Add
// returns added=false and leaves the existing row untouched.
func (r *PostgresSkillRepo) Add(ctx context.Context, userID int64, name string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin skill tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists int64
	if err := tx.QueryRow(ctx, `SELECT user_id FROM users WHERE user_id = $1`, userID).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("check user: %w", err)
	}

	// The no-op update on conflict makes RETURNING yield the existing id.
	var skillID int64
	if err := tx.QueryRow(ctx, `
INSERT INTO skills (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING skill_id`, name).Scan(&skillID); err != nil {
		return false, fmt.Errorf("upsert skill: %w", err)
	}

	tag, err := tx.Exec(ctx, `
INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2)
ON CONFLICT (user_id, skill_id) DO NOTHING`, userID, skillID)
	if err != nil {
		return false, fmt.Errorf("associate skill: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit skill tx: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Remove deletes the association resolved by exact skill name. It
// returns removed=false when no such association exists for the account.
func (r *PostgresSkillRepo) Remove(ctx context.Context, userID int64, name string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
DELETE FROM user_skills us
USING skills s
WHERE us.skill_id = s.skill_id AND us.user_id = $1 AND s.name = $2`, userID, name)
	if err != nil {
		return false, fmt.Errorf("remove skill: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
