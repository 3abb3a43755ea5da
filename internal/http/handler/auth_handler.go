package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imanshadilshan/work-ora/internal/service"
)

// AuthHandler exposes the registration, login and password-reset
// endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

// NewAuthHandler creates the handler set.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// Register handles POST /auth/register. The payload is a multipart
// form so jobseekers can attach their resume.
func (h *AuthHandler) Register(c *gin.Context) {
	resume, contentType, err := formFile(c, "file")
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.Auth.Register(c.Request.Context(), service.RegisterInput{
		Name:              c.PostForm("name"),
		Email:             c.PostForm("email"),
		Password:          c.PostForm("password"),
		PhoneNumber:       c.PostForm("phoneNumber"),
		Role:              c.PostForm("role"),
		Bio:               c.PostForm("bio"),
		Resume:            resume,
		ResumeContentType: contentType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    result.User,
		"token":   result.Token,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide both email and password"})
		return
	}

	result, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User logged in successfully",
		"user":    result.User,
		"token":   result.Token,
	})
}

// ForgotPassword handles POST /auth/forgot-password. The response body
// is identical whether or not the email has an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If that email exists, we have sent a reset link"})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide both token and new password"})
		return
	}

	if err := h.Auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}
