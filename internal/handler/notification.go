package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"panel/internal/middleware"
	"panel/internal/service"
)

type NotificationHandler interface {
	List(c *gin.Context)
	MarkRead(c *gin.Context)
	MarkAllRead(c *gin.Context)
	Delete(c *gin.Context)
}

type notificationHandler struct {
	notificationService service.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService service.NotificationService, logger *zap.Logger) NotificationHandler {
	return &notificationHandler{notificationService: notificationService, logger: logger}
}

// List handles GET /api/notifications, newest first.
func (h *notificationHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	notifications, err := h.notificationService.List(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Failed to retrieve notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead handles POST /api/notifications/:id/read
func (h *notificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	id := c.Param("id")

	notification, err := h.notificationService.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.fail(c, err, "Failed to mark notification as read")
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkAllRead handles POST /api/notifications/mark-all-read. Zero modified
// rows is a valid result, not an error.
func (h *notificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	count, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Failed to mark notifications as read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": count})
}

// Delete handles DELETE /api/notifications/:id
func (h *notificationHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	id := c.Param("id")

	notification, err := h.notificationService.Delete(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.fail(c, err, "Failed to delete notification")
		return
	}

	c.JSON(http.StatusOK, notification)
}

func (h *notificationHandler) fail(c *gin.Context, err error, msg string) {
	h.logger.Error(msg, zap.Error(err))
	if errors.Is(err, service.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
