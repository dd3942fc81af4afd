package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"panel/internal/middleware"
	"panel/internal/models"
	"panel/internal/service"
)

type AuthHandler interface {
	Login(c *gin.Context)
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	UpdateAvatar(c *gin.Context)
	CheckPassword(c *gin.Context)
	ChangePassword(c *gin.Context)
}

type authHandler struct {
	authService         service.AuthService
	notificationService service.NotificationService
	logger              *zap.Logger
}

func NewAuthHandler(authService service.AuthService, notificationService service.NotificationService, logger *zap.Logger) AuthHandler {
	return &authHandler{
		authService:         authService,
		notificationService: notificationService,
		logger:              logger,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Failed attempts surface as a security notification for the
			// administrators; recording it is best-effort.
			if err := h.notificationService.NotifySecurityAlert(c.Request.Context(), c.ClientIP()); err != nil {
				h.logger.Warn("Failed to record security alert", zap.Error(err))
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		h.fail(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetProfile handles GET /api/auth/profile
func (h *authHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.fail(c, err, "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

// UpdateProfile handles PUT /api/auth/profile. Fields absent from the body
// are left unchanged.
func (h *authHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	update := models.ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.fail(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// UpdateAvatar handles PUT /api/auth/profile/avatar
func (h *authHandler) UpdateAvatar(c *gin.Context) {
	var req UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	user, err := h.authService.UpdateAvatar(c.Request.Context(), userID, req.Avatar)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image format"})
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.fail(c, err, "Failed to update avatar")
		return
	}

	c.JSON(http.StatusOK, user)
}

type CheckPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// CheckPassword handles POST /api/auth/check-password. It verifies the
// supplied password without mutating anything; used as a confirmation step
// before sensitive changes.
func (h *authHandler) CheckPassword(c *gin.Context) {
	var req CheckPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	valid, err := h.authService.CheckPassword(c.Request.Context(), userID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.fail(c, err, "Failed to check password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"isValid": valid})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ChangePassword handles POST /api/auth/change-password
func (h *authHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 6 characters"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.fail(c, err, "Failed to change password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// fail logs the underlying error and answers with the service-unavailable or
// generic failure classification.
func (h *authHandler) fail(c *gin.Context, err error, msg string) {
	h.logger.Error(msg, zap.Error(err))
	if errors.Is(err, service.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
