package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/domain"
	"github.com/imanshadilshan/work-ora/internal/repository"
	"github.com/imanshadilshan/work-ora/internal/token"
)

const currentUserKey = "currentUser"

// Auth verifies the bearer token and attaches the account to the
// request context. Every failure path resolves to 401.
type Auth struct {
	Users  repository.UserRepository
	Tokens *token.Issuer
	Logger *zap.Logger
}

// RequireAuth aborts with 401 unless the request carries a valid
// session token for an existing account.
func (m *Auth) RequireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	userID, err := m.Tokens.VerifySession(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Invalid token"})
		return
	}

	// A lookup error reads the same as a missing account.
	user, err := m.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Warn("token account lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: User associated with token not found"})
		return
	}

	if user.Skills == nil {
		user.Skills = []string{}
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// CurrentUser returns the authenticated account attached by
// RequireAuth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}
