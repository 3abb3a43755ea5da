package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/config"
	"github.com/imanshadilshan/work-ora/internal/domain"
	"github.com/imanshadilshan/work-ora/internal/mail"
	pw "github.com/imanshadilshan/work-ora/internal/password"
	"github.com/imanshadilshan/work-ora/internal/relay"
	"github.com/imanshadilshan/work-ora/internal/repository"
	"github.com/imanshadilshan/work-ora/internal/token"
)

// AuthService covers registration, login and the password-reset flow.
type AuthService struct {
	users     repository.UserRepository
	uploads   relay.Uploader
	notifier  relay.Notifier
	tokens    *token.Issuer
	snowflake *snowflake.Node
	cfg       config.Config
	logger    *zap.Logger
	tracer    trace.Tracer
}

// NewAuthService wires dependencies.
func NewAuthService(users repository.UserRepository, uploads relay.Uploader, notifier relay.Notifier, tokens *token.Issuer, node *snowflake.Node, cfg config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		uploads:   uploads,
		notifier:  notifier,
		tokens:    tokens,
		snowflake: node,
		cfg:       cfg,
		logger:    logger,
		tracer:    otel.Tracer("github.com/imanshadilshan/work-ora/internal/service"),
	}
}

// AuthResult carries the sanitized account plus its session token.
type AuthResult struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

// RegisterInput is the registration payload. Resume is the raw file
// for jobseekers.
type RegisterInput struct {
	Name              string
	Email             string
	Password          string
	PhoneNumber       string
	Role              string
	Bio               string
	Resume            []byte
	ResumeContentType string
}

// Register validates input, stores the account with a hashed password
// and issues a session token. Jobseekers must attach a resume, which is
// relayed to the upload service before the insert.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if in.Name == "" || in.Email == "" || in.Password == "" || in.PhoneNumber == "" || in.Role == "" {
		return AuthResult{}, badRequest("Please provide all required fields: name, email, password, phoneNumber, role")
	}

	normalized := normalizeEmail(in.Email)
	if _, err := s.users.GetByEmail(ctx, normalized); err == nil {
		return AuthResult{}, badRequest("User with this email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		span.RecordError(err)
		return AuthResult{}, fmt.Errorf("check existing user: %w", err)
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return AuthResult{}, badRequest("Role must be either 'recruiter' or 'jobseeker'")
	}

	hashed, err := pw.Hash(in.Password)
	if err != nil {
		span.RecordError(err)
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           s.snowflake.Generate().Int64(),
		Name:         in.Name,
		Email:        normalized,
		PasswordHash: hashed,
		PhoneNumber:  in.PhoneNumber,
		Role:         role,
		Bio:          in.Bio,
	}

	switch role {
	case domain.RoleRecruiter:
	case domain.RoleJobseeker:
		if len(in.Resume) == 0 {
			return AuthResult{}, badRequest("Resume file is required for jobseekers")
		}
		asset, err := s.uploads.Upload(ctx, in.Resume, in.ResumeContentType, "")
		if err != nil {
			span.RecordError(err)
			return AuthResult{}, fmt.Errorf("upload resume: %w", err)
		}
		user.Resume = asset.URL
		user.ResumePublicID = asset.PublicID
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		span.RecordError(err)
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	signed, err := s.tokens.SessionToken(created.ID)
	if err != nil {
		span.RecordError(err)
		return AuthResult{}, fmt.Errorf("issue session token: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", created.ID), zap.String("role", string(created.Role)))
	return AuthResult{User: NewUserView(created), Token: signed}, nil
}

// Login verifies credentials and issues a fresh session token. Unknown
// email and wrong password collapse to the same generic error.
func (s *AuthService) Login(ctx context.Context, email, passwd string) (AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if email == "" || passwd == "" {
		return AuthResult{}, badRequest("Please provide both email and password")
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AuthResult{}, badRequest("Invalid credentials")
		}
		span.RecordError(err)
		return AuthResult{}, fmt.Errorf("load user: %w", err)
	}

	ok, err := pw.Verify(passwd, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, badRequest("Invalid credentials")
	}

	signed, err := s.tokens.SessionToken(user.ID)
	if err != nil {
		span.RecordError(err)
		return AuthResult{}, fmt.Errorf("issue session token: %w", err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return AuthResult{User: NewUserView(user), Token: signed}, nil
}

// ForgotPassword enqueues a reset-link email when the account exists.
// The caller's acknowledgement is identical either way, so the email
// address cannot be probed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	ctx, span := s.tracer.Start(ctx, "AuthService.ForgotPassword")
	defer span.End()

	if email == "" {
		return badRequest("Email is required")
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		span.RecordError(err)
		return fmt.Errorf("load user: %w", err)
	}

	reset, err := s.tokens.ResetToken(user.Email)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("issue reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset/%s", s.cfg.FrontendURL, reset)
	s.notifier.Enqueue(ctx, relay.Envelope{
		To:      user.Email,
		Subject: "Reset Your Password - Work-Ora",
		HTML:    mail.ForgotPasswordHTML(resetLink),
	})

	s.logger.Info("password reset requested", zap.Int64("user_id", user.ID))
	return nil
}

// ResetPassword verifies a reset token and stores a new hash. Tokens
// stay valid until expiry; there is no single-use bookkeeping.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	ctx, span := s.tracer.Start(ctx, "AuthService.ResetPassword")
	defer span.End()

	if rawToken == "" || newPassword == "" {
		return badRequest("Please provide both token and new password")
	}

	email, err := s.tokens.VerifyReset(rawToken)
	if err != nil {
		return badRequest("Invalid or expired reset token")
	}

	hashed, err := pw.Hash(newPassword)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, email, hashed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return badRequest("Invalid or expired reset token")
		}
		span.RecordError(err)
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Info("password reset completed", zap.String("email", email))
	return nil
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
