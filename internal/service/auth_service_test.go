package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/config"
	"github.com/imanshadilshan/work-ora/internal/domain"
	"github.com/imanshadilshan/work-ora/internal/password"
	"github.com/imanshadilshan/work-ora/internal/relay"
	"github.com/imanshadilshan/work-ora/internal/service"
	"github.com/imanshadilshan/work-ora/internal/token"
)

func newAuthService(t *testing.T, users *memoryUserRepo, uploads *fakeUploader, notifier *fakeNotifier) *service.AuthService {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	cfg := config.Config{FrontendURL: "http://localhost:3000"}
	issuer := token.NewIssuer("test-secret", time.Hour, 15*time.Minute)
	return service.NewAuthService(users, uploads, notifier, issuer, node, cfg, zap.NewNop())
}

func TestRegisterRecruiter(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	uploads := &fakeUploader{}
	notifier := &fakeNotifier{}
	svc := newAuthService(t, users, uploads, notifier)

	result, err := svc.Register(ctx, service.RegisterInput{
		Name:        "Rita",
		Email:       "Rita@Example.com",
		Password:    "hunter2boogaloo",
		PhoneNumber: "0123456789",
		Role:        "recruiter",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "rita@example.com", result.User.Email)
	require.Equal(t, domain.RoleRecruiter, result.User.Role)
	require.NotNil(t, result.User.Skills)
	require.Zero(t, uploads.calls)

	stored, err := users.GetByEmail(ctx, "rita@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2boogaloo", stored.PasswordHash)
	ok, err := password.Verify("hunter2boogaloo", stored.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterJobseekerUploadsResume(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	uploads := &fakeUploader{asset: relay.Asset{URL: "https://cdn/resume.pdf", PublicID: "res-1"}}
	svc := newAuthService(t, users, uploads, &fakeNotifier{})

	result, err := svc.Register(ctx, service.RegisterInput{
		Name:              "Sam",
		Email:             "sam@example.com",
		Password:          "s3cret-enough",
		PhoneNumber:       "0123456789",
		Role:              "jobseeker",
		Resume:            []byte("%PDF-1.4"),
		ResumeContentType: "application/pdf",
	})
	require.NoError(t, err)
	require.Equal(t, 1, uploads.calls)
	require.Equal(t, "https://cdn/resume.pdf", result.User.Resume)
}

func TestRegisterJobseekerRequiresResume(t *testing.T) {
	svc := newAuthService(t, newMemoryUserRepo(), &fakeUploader{}, &fakeNotifier{})

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Name:        "Sam",
		Email:       "sam@example.com",
		Password:    "s3cret-enough",
		PhoneNumber: "0123456789",
		Role:        "jobseeker",
	})
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, 400, svcErr.Status)
	require.Equal(t, "Resume file is required for jobseekers", svcErr.Message)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	svc := newAuthService(t, users, &fakeUploader{}, &fakeNotifier{})

	input := service.RegisterInput{
		Name:        "Rita",
		Email:       "rita@example.com",
		Password:    "hunter2boogaloo",
		PhoneNumber: "0123456789",
		Role:        "recruiter",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, 400, svcErr.Status)
	require.Equal(t, "User with this email already exists", svcErr.Message)
	require.Len(t, users.byEmail, 1)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newAuthService(t, newMemoryUserRepo(), &fakeUploader{}, &fakeNotifier{})

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Name:        "Rita",
		Email:       "rita@example.com",
		Password:    "hunter2boogaloo",
		PhoneNumber: "0123456789",
		Role:        "admin",
	})
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, 400, svcErr.Status)
	require.Equal(t, "Role must be either 'recruiter' or 'jobseeker'", svcErr.Message)
}

func TestLoginDoesNotRevealWhichCredentialFailed(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	svc := newAuthService(t, users, &fakeUploader{}, &fakeNotifier{})

	_, err := svc.Register(ctx, service.RegisterInput{
		Name:        "Rita",
		Email:       "rita@example.com",
		Password:    "hunter2boogaloo",
		PhoneNumber: "0123456789",
		Role:        "recruiter",
	})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "rita@example.com", "not-the-password")
	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "not-the-password")

	var pwErr, emailErr *service.Error
	require.ErrorAs(t, wrongPassword, &pwErr)
	require.ErrorAs(t, unknownEmail, &emailErr)
	require.Equal(t, pwErr.Status, emailErr.Status)
	require.Equal(t, pwErr.Message, emailErr.Message)
	require.Equal(t, "Invalid credentials", pwErr.Message)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	svc := newAuthService(t, users, &fakeUploader{}, &fakeNotifier{})

	registered, err := svc.Register(ctx, service.RegisterInput{
		Name:        "Rita",
		Email:       "rita@example.com",
		Password:    "hunter2boogaloo",
		PhoneNumber: "0123456789",
		Role:        "recruiter",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "Rita@Example.com ", "hunter2boogaloo")
	require.NoError(t, err)

	issuer := token.NewIssuer("test-secret", time.Hour, 15*time.Minute)
	userID, err := issuer.VerifySession(result.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, userID)
}

func TestForgotPasswordAcknowledgesUnknownEmail(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	notifier := &fakeNotifier{}
	svc := newAuthService(t, users, &fakeUploader{}, notifier)

	require.NoError(t, svc.ForgotPassword(ctx, "nobody@example.com"))
	require.Empty(t, notifier.sent)
}

func TestForgotPasswordEnqueuesResetMail(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	notifier := &fakeNotifier{}
	svc := newAuthService(t, users, &fakeUploader{}, notifier)

	_, err := svc.Register(ctx, service.RegisterInput{
		Name:        "Rita",
		Email:       "rita@example.com",
		Password:    "hunter2boogaloo",
		PhoneNumber: "0123456789",
		Role:        "recruiter",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "rita@example.com"))
	require.Len(t, notifier.sent, 1)
	require.Equal(t, "rita@example.com", notifier.sent[0].To)
	require.Equal(t, "Reset Your Password - Work-Ora", notifier.sent[0].Subject)
	require.Contains(t, notifier.sent[0].HTML, "http://localhost:3000/reset/")
}

func TestResetPasswordRoundTrip(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	notifier := &fakeNotifier{}
	svc := newAuthService(t, users, &fakeUploader{}, notifier)

	_, err := svc.Register(ctx, service.RegisterInput{
		Name:        "Rita",
		Email:       "rita@example.com",
		Password:    "hunter2boogaloo",
		PhoneNumber: "0123456789",
		Role:        "recruiter",
	})
	require.NoError(t, err)

	issuer := token.NewIssuer("test-secret", time.Hour, 15*time.Minute)
	reset, err := issuer.ResetToken("rita@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, reset, "brand-new-password"))

	_, err = svc.Login(ctx, "rita@example.com", "hunter2boogaloo")
	require.Error(t, err)
	_, err = svc.Login(ctx, "rita@example.com", "brand-new-password")
	require.NoError(t, err)
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, newMemoryUserRepo(), &fakeUploader{}, &fakeNotifier{})

	issuer := token.NewIssuer("test-secret", time.Hour, 15*time.Minute)
	session, err := issuer.SessionToken(42)
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, session, "brand-new-password")
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, 400, svcErr.Status)
	require.Equal(t, "Invalid or expired reset token", svcErr.Message)
}

type memoryUserRepo struct {
	byID    map[int64]domain.User
	byEmail map[string]int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byID:    map[int64]domain.User{},
		byEmail: map[string]int64{},
	}
}

func (m *memoryUserRepo) GetByID(ctx context.Context, userID int64) (domain.User, error) {
	user, ok := m.byID[userID]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *memoryUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.byID[id], nil
}

func (m *memoryUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user.ID
	return user, nil
}

func (m *memoryUserRepo) UpdateProfile(ctx context.Context, userID int64, name, phoneNumber, bio string) (domain.User, error) {
	user, ok := m.byID[userID]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	user.Name = name
	user.PhoneNumber = phoneNumber
	user.Bio = bio
	m.byID[userID] = user
	return user, nil
}

func (m *memoryUserRepo) UpdateProfilePicture(ctx context.Context, userID int64, url, publicID string) (domain.User, error) {
	user, ok := m.byID[userID]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	user.ProfilePic = url
	user.ProfilePicPublicID = publicID
	m.byID[userID] = user
	return user, nil
}

func (m *memoryUserRepo) UpdateResume(ctx context.Context, userID int64, url, publicID string) (domain.User, error) {
	user, ok := m.byID[userID]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	user.Resume = url
	user.ResumePublicID = publicID
	m.byID[userID] = user
	return user, nil
}

func (m *memoryUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	id, ok := m.byEmail[email]
	if !ok {
		return pgx.ErrNoRows
	}
	user := m.byID[id]
	user.PasswordHash = passwordHash
	m.byID[id] = user
	return nil
}

type fakeUploader struct {
	asset relay.Asset
	calls int
	last  string
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, contentType, priorID string) (relay.Asset, error) {
	f.calls++
	f.last = priorID
	if f.asset.URL == "" {
		return relay.Asset{URL: "https://cdn/asset", PublicID: "asset-1"}, nil
	}
	return f.asset, nil
}

type fakeNotifier struct {
	sent []relay.Envelope
}

func (f *fakeNotifier) Enqueue(ctx context.Context, msg relay.Envelope) {
	f.sent = append(f.sent, msg)
}
