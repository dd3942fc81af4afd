package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"panel/internal/models"
	"panel/internal/repository"
)

// Notifier forwards a freshly created notification to an external channel.
// Forwarding is best-effort: a failure never fails the originating request.
type Notifier interface {
	Notify(notification *models.Notification) error
}

type NotificationService interface {
	List(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) (*models.Notification, error)

	NotifyUserRegistered(ctx context.Context, email string) error
	NotifyReportIncrease(ctx context.Context, percentage int) error
	NotifySecurityAlert(ctx context.Context, ipAddress string) error
	NotifyTasksAdded(ctx context.Context, count int) error
}

type notificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	notifier      Notifier
	logger        *zap.Logger
}

// NewNotificationService wires the notification operations. The notifier may
// be nil when no external channel is configured.
func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository, notifier Notifier, logger *zap.Logger) NotificationService {
	return &notificationService{
		notifications: notifications,
		users:         users,
		notifier:      notifier,
		logger:        logger,
	}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]*models.Notification, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return notifications, nil
}

// MarkRead flips the read flag on a single owned notification. An id that is
// not a uuid cannot match any row, so it is reported the same way as a
// missing or foreign one.
func (s *notificationService) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	notification, err := s.notifications.MarkRead(ctx, userID, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return notification, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	count, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (s *notificationService) Delete(ctx context.Context, userID, id string) (*models.Notification, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	notification, err := s.notifications.Delete(ctx, userID, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return notification, nil
}

// createForAdmins creates one notification per administrator user and
// forwards each to the external notifier when one is configured.
func (s *notificationService) createForAdmins(ctx context.Context, title, message, notificationType string) error {
	admins, err := s.users.GetByRole(ctx, models.RoleAdministrator)
	if err != nil {
		return storeErr(err)
	}

	for _, admin := range admins {
		notification := &models.Notification{
			UserID:  admin.ID,
			Title:   title,
			Message: message,
			Type:    notificationType,
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			return storeErr(err)
		}

		if s.notifier != nil {
			if err := s.notifier.Notify(notification); err != nil {
				s.logger.Warn("Failed to forward notification",
					zap.String("type", notificationType), zap.Error(err))
			}
		}
	}

	return nil
}

func (s *notificationService) NotifyUserRegistered(ctx context.Context, email string) error {
	return s.createForAdmins(ctx, "New User Registration",
		fmt.Sprintf("A new user signed up: %s", email), models.NotificationUser)
}

func (s *notificationService) NotifyReportIncrease(ctx context.Context, percentage int) error {
	return s.createForAdmins(ctx, "Report Count Increased",
		fmt.Sprintf("Report count grew by %d%% this month", percentage), models.NotificationSystem)
}

func (s *notificationService) NotifySecurityAlert(ctx context.Context, ipAddress string) error {
	return s.createForAdmins(ctx, "Security Alert",
		fmt.Sprintf("Suspicious login attempt detected: %s", ipAddress), models.NotificationSecurity)
}

func (s *notificationService) NotifyTasksAdded(ctx context.Context, count int) error {
	return s.createForAdmins(ctx, "New Tasks Added",
		fmt.Sprintf("%d new tasks were added to the system", count), models.NotificationMaintenance)
}
