package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imanshadilshan/work-ora/internal/http/middleware"
	"github.com/imanshadilshan/work-ora/internal/service"
)

// UserHandler exposes the profile and skill endpoints. All routes
// require an authenticated user.
type UserHandler struct {
	Users *service.UserService
}

// NewUserHandler creates the handler set.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// Me handles GET /users/me and returns the caller's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	view, err := h.Users.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": view})
}

// GetProfile handles GET /users/:userId.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": view})
}

// UpdateProfile handles PUT /users/update/profile. Blank fields keep
// their current value.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	var req struct {
		Name        string `json:"name"`
		PhoneNumber string `json:"phoneNumber"`
		Bio         string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	view, err := h.Users.UpdateProfile(c.Request.Context(), actor, req.Name, req.PhoneNumber, req.Bio)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    view,
	})
}

// UpdateProfilePicture handles PUT /users/update/profile-pic with a
// multipart "file" part.
func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	data, contentType, err := formFile(c, "file")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Users.UpdateProfilePicture(c.Request.Context(), actor, data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile picture updated successfully",
		"user":    view,
	})
}

// UpdateResume handles PUT /users/update/resume with a multipart
// "file" part.
func (h *UserHandler) UpdateResume(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	data, contentType, err := formFile(c, "file")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.Users.UpdateResume(c.Request.Context(), actor, data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Resume updated successfully",
		"user":    view,
	})
}

// AddSkill handles POST /users/skill/add. Adding a skill the user already
// has is reported as a success.
func (h *UserHandler) AddSkill(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	var req struct {
		Skill string `json:"skill"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Skill name is required"})
		return
	}

	alreadyExists, err := h.Users.AddSkill(c.Request.Context(), actor.ID, req.Skill)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Skill added successfully"
	if alreadyExists {
		message = "Skill already exists for this user"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// RemoveSkill handles DELETE /users/skill/delete.
func (h *UserHandler) RemoveSkill(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
		return
	}

	var req struct {
		Skill string `json:"skill"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Skill name is required"})
		return
	}

	if err := h.Users.RemoveSkill(c.Request.Context(), actor.ID, req.Skill); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill removed successfully"})
}
