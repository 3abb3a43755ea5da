package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/domain"
	"github.com/imanshadilshan/work-ora/internal/http/middleware"
	"github.com/imanshadilshan/work-ora/internal/token"
)

func newTestRouter(t *testing.T, users *stubUserRepo) (*gin.Engine, *token.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := token.NewIssuer("test-secret", time.Hour, 15*time.Minute)
	auth := &middleware.Auth{Users: users, Tokens: issuer, Logger: zap.NewNop()}

	r := gin.New()
	r.GET("/protected", auth.RequireAuth, func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "skills": user.Skills})
	})
	return r, issuer
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r, _ := newTestRouter(t, &stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message": "Unauthorized: No token provided"}`, w.Body.String())
}

func TestRequireAuthMalformedToken(t *testing.T) {
	r, _ := newTestRouter(t, &stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message": "Unauthorized: Invalid token"}`, w.Body.String())
}

func TestRequireAuthUnknownAccount(t *testing.T) {
	r, issuer := newTestRouter(t, &stubUserRepo{})

	signed, err := issuer.SessionToken(404)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message": "Unauthorized: User associated with token not found"}`, w.Body.String())
}

func TestRequireAuthAttachesUser(t *testing.T) {
	users := &stubUserRepo{user: domain.User{ID: 7, Name: "Rita", Role: domain.RoleRecruiter}}
	r, issuer := newTestRouter(t, users)

	signed, err := issuer.SessionToken(7)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user_id": 7, "skills": []}`, w.Body.String())
}

type stubUserRepo struct {
	user domain.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, userID int64) (domain.User, error) {
	if s.user.ID == 0 || s.user.ID != userID {
		return domain.User{}, pgx.ErrNoRows
	}
	return s.user, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return domain.User{}, pgx.ErrNoRows
}

func (s *stubUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return user, nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, userID int64, name, phoneNumber, bio string) (domain.User, error) {
	return domain.User{}, pgx.ErrNoRows
}

func (s *stubUserRepo) UpdateProfilePicture(ctx context.Context, userID int64, url, publicID string) (domain.User, error) {
	return domain.User{}, pgx.ErrNoRows
}

func (s *stubUserRepo) UpdateResume(ctx context.Context, userID int64, url, publicID string) (domain.User, error) {
	return domain.User{}, pgx.ErrNoRows
}

func (s *stubUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return pgx.ErrNoRows
}
