package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/domain"
	"github.com/imanshadilshan/work-ora/internal/relay"
	"github.com/imanshadilshan/work-ora/internal/repository"
)

// UserService covers profile reads and updates plus skill tagging.
type UserService struct {
	users   repository.UserRepository
	skills  repository.SkillRepository
	uploads relay.Uploader
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewUserService wires dependencies.
func NewUserService(users repository.UserRepository, skills repository.SkillRepository, uploads relay.Uploader, logger *zap.Logger) *UserService {
	return &UserService{
		users:   users,
		skills:  skills,
		uploads: uploads,
		logger:  logger,
		tracer:  otel.Tracer("github.com/imanshadilshan/work-ora/internal/service"),
	}
}

// GetProfile loads a public profile by id.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (UserView, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetProfile")
	defer span.End()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserView{}, notFound("User not found")
		}
		span.RecordError(err)
		return UserView{}, fmt.Errorf("load user: %w", err)
	}
	return NewUserView(user), nil
}

// UpdateProfile applies a partial name/phone/bio update; blank fields
// keep their current values.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.User, name, phoneNumber, bio string) (UserView, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateProfile")
	defer span.End()

	if name == "" {
		name = actor.Name
	}
	if phoneNumber == "" {
		phoneNumber = actor.PhoneNumber
	}
	if bio == "" {
		bio = actor.Bio
	}

	if _, err := s.users.UpdateProfile(ctx, actor.ID, name, phoneNumber, bio); err != nil {
		span.RecordError(err)
		return UserView{}, fmt.Errorf("update profile: %w", err)
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		span.RecordError(err)
		return UserView{}, fmt.Errorf("reload user: %w", err)
	}
	return NewUserView(user), nil
}

// UpdateProfilePicture relays the new image to the upload service,
// replacing the prior asset, and stores the returned reference.
func (s *UserService) UpdateProfilePicture(ctx context.Context, actor domain.User, data []byte, contentType string) (UserView, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateProfilePicture")
	defer span.End()

	if len(data) == 0 {
		return UserView{}, badRequest("No image file uploaded")
	}

	asset, err := s.uploads.Upload(ctx, data, contentType, actor.ProfilePicPublicID)
	if err != nil {
		span.RecordError(err)
		return UserView{}, fmt.Errorf("upload profile picture: %w", err)
	}

	if _, err := s.users.UpdateProfilePicture(ctx, actor.ID, asset.URL, asset.PublicID); err != nil {
		span.RecordError(err)
		return UserView{}, fmt.Errorf("store profile picture: %w", err)
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		span.RecordError(err)
		return UserView{}, fmt.Errorf("reload user: %w", err)
	}
	return NewUserView(user), nil
}

// UpdateResume relays the new resume, replacing the prior asset.
func (s *UserService) UpdateResume(ctx context.Context, actor domain.User, data []byte, contentType string) (UserView, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateResume")
	defer span.End()

	if len(data) == 0 {
		return UserView{}, badRequest("No resume file uploaded")
	}

	asset, err := s.uploads.Upload(ctx, data, contentType, actor.ResumePublicID)
	if err != nil {
		span.RecordError(err)
		return UserView{}, fmt.Errorf("upload resume: %w", err)
	}

	if _, err := s.users.UpdateResume(ctx, actor.ID, asset.URL, asset.PublicID); err != nil {
		span.RecordError(err)
		return UserView{}, fmt.Errorf("store resume: %w", err)
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		span.RecordError(err)
		return UserView{}, fmt.Errorf("reload user: %w", err)
	}
	return NewUserView(user), nil
}

// AddSkill tags the account with the named skill. A repeat tag is a
// successful no-op; alreadyExists tells the handler which message to
// return.
func (s *UserService) AddSkill(ctx context.Context, userID int64, name string) (alreadyExists bool, err error) {
	ctx, span := s.tracer.Start(ctx, "UserService.AddSkill")
	defer span.End()

	if name == "" {
		return false, badRequest("Skill name is required")
	}

	added, err := s.skills.Add(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, notFound("User not found")
		}
		span.RecordError(err)
		return false, fmt.Errorf("add skill: %w", err)
	}

	if added {
		s.logger.Info("skill added", zap.Int64("user_id", userID), zap.String("skill", name))
	}
	return !added, nil
}

// RemoveSkill deletes the association resolved by exact skill name.
func (s *UserService) RemoveSkill(ctx context.Context, userID int64, name string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.RemoveSkill")
	defer span.End()

	if name == "" {
		return badRequest("Skill name is required")
	}

	removed, err := s.skills.Remove(ctx, userID, name)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("remove skill: %w", err)
	}
	if !removed {
		return notFound("Skill not found for this user")
	}

	s.logger.Info("skill removed", zap.Int64("user_id", userID), zap.String("skill", name))
	return nil
}
