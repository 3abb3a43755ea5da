package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imanshadilshan/work-ora/internal/domain"
)

// Compile-time interface assertions.
var (
	_ UserRepository        = (*PostgresUserRepo)(nil)
	_ SkillRepository       = (*PostgresSkillRepo)(nil)
	_ CompanyRepository     = (*PostgresCompanyRepo)(nil)
	_ JobRepository         = (*PostgresJobRepo)(nil)
	_ ApplicationRepository = (*PostgresApplicationRepo)(nil)
)

// PostgresUserRepo implements UserRepository on a pgx pool.
type PostgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{db: pool}
}

const userWithSkillsSQL = `
SELECT u.user_id, u.name, u.email, u.password, u.phone_number, u.role, u.bio,
       u.resume, u.resume_public_id, u.profile_pic, u.profile_pic_public_id,
       u.subscription, u.created_at,
       COALESCE(ARRAY_AGG(s.name) FILTER (WHERE s.name IS NOT NULL), '{}') AS skills
FROM users u
LEFT JOIN user_skills us ON u.user_id = us.user_id
LEFT JOIN skills s ON us.skill_id = s.skill_id
WHERE %s
GROUP BY u.user_id`

func (r *PostgresUserRepo) GetByID(ctx context.Context, userID int64) (domain.User, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(userWithSkillsSQL, "u.user_id = $1"), userID)
	user, err := scanUserWithSkills(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(userWithSkillsSQL, "u.email = $1"), email)
	user, err := scanUserWithSkills(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

const insertUserSQL = `INSERT INTO users (user_id, name, email, password, phone_number, role, bio, resume, resume_public_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING user_id, name, email, phone_number, role, bio, resume, created_at`

func (r *PostgresUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.db.QueryRow(ctx, insertUserSQL,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.PhoneNumber,
		string(user.Role),
		nullable(user.Bio),
		nullable(user.Resume),
		nullable(user.ResumePublicID),
	)

	var created domain.User
	var role string
	var bio, resume sql.NullString
	var createdAt time.Time
	if err := row.Scan(&created.ID, &created.Name, &created.Email, &created.PhoneNumber, &role, &bio, &resume, &createdAt); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	created.Role = domain.Role(role)
	created.Bio = bio.String
	created.Resume = resume.String
	created.CreatedAt = createdAt
	created.Skills = []string{}
	return created, nil
}

const updateProfileSQL = `UPDATE users
SET name = $2, phone_number = $3, bio = $4
WHERE user_id = $1
RETURNING user_id, name, email, phone_number, bio`

func (r *PostgresUserRepo) UpdateProfile(ctx context.Context, userID int64, name, phoneNumber, bio string) (domain.User, error) {
	var updated domain.User
	var updatedBio sql.NullString
	if err := r.db.QueryRow(ctx, updateProfileSQL, userID, name, phoneNumber, nullable(bio)).Scan(
		&updated.ID, &updated.Name, &updated.Email, &updated.PhoneNumber, &updatedBio,
	); err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	updated.Bio = updatedBio.String
	return updated, nil
}

const updateProfilePicSQL = `UPDATE users
SET profile_pic = $2, profile_pic_public_id = $3
WHERE user_id = $1
RETURNING user_id, name, profile_pic`

func (r *PostgresUserRepo) UpdateProfilePicture(ctx context.Context, userID int64, url, publicID string) (domain.User, error) {
	var updated domain.User
	if err := r.db.QueryRow(ctx, updateProfilePicSQL, userID, url, publicID).Scan(
		&updated.ID, &updated.Name, &updated.ProfilePic,
	); err != nil {
		return domain.User{}, fmt.Errorf("update profile picture: %w", err)
	}
	updated.ProfilePicPublicID = publicID
	return updated, nil
}

const updateResumeSQL = `UPDATE users
SET resume = $2, resume_public_id = $3
WHERE user_id = $1
RETURNING user_id, name, resume`

func (r *PostgresUserRepo) UpdateResume(ctx context.Context, userID int64, url, publicID string) (domain.User, error) {
	var updated domain.User
	if err := r.db.QueryRow(ctx, updateResumeSQL, userID, url, publicID).Scan(
		&updated.ID, &updated.Name, &updated.Resume,
	); err != nil {
		return domain.User{}, fmt.Errorf("update resume: %w", err)
	}
	updated.ResumePublicID = publicID
	return updated, nil
}

func (r *PostgresUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password = $2 WHERE email = $1`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUserWithSkills(row pgx.Row) (domain.User, error) {
	var user domain.User
	var role string
	var bio, resume, resumePublicID, profilePic, profilePicPublicID, subscription sql.NullString
	var skills []string

	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.PhoneNumber,
		&role,
		&bio,
		&resume,
		&resumePublicID,
		&profilePic,
		&profilePicPublicID,
		&subscription,
		&user.CreatedAt,
		&skills,
	); err != nil {
		return domain.User{}, err
	}

	user.Role = domain.Role(role)
	user.Bio = bio.String
	user.Resume = resume.String
	user.ResumePublicID = resumePublicID.String
	user.ProfilePic = profilePic.String
	user.ProfilePicPublicID = profilePicPublicID.String
	user.Subscription = subscription.String
	if skills == nil {
		skills = []string{}
	}
	user.Skills = skills
	return user, nil
}

func nullable(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
