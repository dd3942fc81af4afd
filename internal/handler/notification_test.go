package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"panel/internal/middleware"
	"panel/internal/models"
	"panel/internal/service"
)

type stubNotificationService struct {
	list           []*models.Notification
	notification   *models.Notification
	count          int64
	err            error
	securityAlerts []string
}

func (s *stubNotificationService) List(context.Context, string) ([]*models.Notification, error) {
	return s.list, s.err
}

func (s *stubNotificationService) MarkRead(context.Context, string, string) (*models.Notification, error) {
	return s.notification, s.err
}

func (s *stubNotificationService) MarkAllRead(context.Context, string) (int64, error) {
	return s.count, s.err
}

func (s *stubNotificationService) Delete(context.Context, string, string) (*models.Notification, error) {
	return s.notification, s.err
}

func (s *stubNotificationService) NotifyUserRegistered(context.Context, string) error { return s.err }
func (s *stubNotificationService) NotifyReportIncrease(context.Context, int) error    { return s.err }
func (s *stubNotificationService) NotifySecurityAlert(_ context.Context, ip string) error {
	s.securityAlerts = append(s.securityAlerts, ip)
	return s.err
}
func (s *stubNotificationService) NotifyTasksAdded(context.Context, int) error        { return s.err }

func newNotificationRouter(svc service.NotificationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	identity := func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "u1")
	}

	h := NewNotificationHandler(svc, zap.NewNop())
	router.GET("/api/notifications", identity, h.List)
	router.POST("/api/notifications/:id/read", identity, h.MarkRead)
	router.POST("/api/notifications/mark-all-read", identity, h.MarkAllRead)
	router.DELETE("/api/notifications/:id", identity, h.Delete)
	return router
}

func TestNotificationList(t *testing.T) {
	now := time.Now().UTC()
	router := newNotificationRouter(&stubNotificationService{list: []*models.Notification{
		{ID: "n2", UserID: "u1", Title: "Security Alert", Type: models.NotificationSecurity, CreatedAt: now},
		{ID: "n1", UserID: "u1", Title: "New Tasks Added", Type: models.NotificationMaintenance, IsRead: true, CreatedAt: now.Add(-time.Hour)},
	}})

	w := doJSON(router, http.MethodGet, "/api/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":"n2"`)
	require.Contains(t, w.Body.String(), `"isRead":true`)
}

func TestNotificationMarkReadNotFound(t *testing.T) {
	router := newNotificationRouter(&stubNotificationService{err: service.ErrNotFound})

	w := doJSON(router, http.MethodPost, "/api/notifications/abc/read", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationMarkAllRead(t *testing.T) {
	router := newNotificationRouter(&stubNotificationService{count: 1})

	w := doJSON(router, http.MethodPost, "/api/notifications/mark-all-read", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"modifiedCount":1}`, w.Body.String())
}

func TestNotificationDelete(t *testing.T) {
	now := time.Now().UTC()
	router := newNotificationRouter(&stubNotificationService{notification: &models.Notification{
		ID: "n1", UserID: "u1", Title: "Security Alert", Type: models.NotificationSecurity, CreatedAt: now,
	}})

	w := doJSON(router, http.MethodDelete, "/api/notifications/n1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":"n1"`)
}

func TestNotificationStoreUnavailable(t *testing.T) {
	router := newNotificationRouter(&stubNotificationService{err: service.ErrUnavailable})

	w := doJSON(router, http.MethodGet, "/api/notifications", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
