package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"panel/internal/models"
	"panel/internal/repository"
	"panel/internal/service"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// Seed provisions the default administrator on first run and, when the
// notification store is empty, a set of sample notifications. Re-running it
// is safe: an existing admin only gets its role re-asserted.
func Seed(ctx context.Context, users repository.UserRepository, notifications repository.NotificationRepository, logger *zap.Logger) error {
	admin, err := users.GetByUsername(ctx, defaultAdminUsername)
	switch {
	case err == nil:
		if admin.Role != models.RoleAdministrator {
			if err := users.UpdateRole(ctx, admin.ID, models.RoleAdministrator); err != nil {
				return fmt.Errorf("failed to update admin role: %w", err)
			}
			logger.Info("Admin role re-asserted", zap.String("username", admin.Username))
		}
	case errors.Is(err, sql.ErrNoRows):
		hash, err := service.HashPassword(defaultAdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash default admin password: %w", err)
		}
		admin = &models.User{
			Username:     defaultAdminUsername,
			PasswordHash: hash,
			FullName:     "Admin User",
			Email:        "admin@example.com",
			Phone:        "+90 555 555 5555",
			Location:     "Istanbul, Turkey",
			Role:         models.RoleAdministrator,
		}
		if err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create default admin: %w", err)
		}
		logger.Info("Default admin user created", zap.String("username", admin.Username))
	default:
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	count, err := notifications.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count notifications: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	samples := []*models.Notification{
		{
			UserID:    admin.ID,
			Title:     "New User Registration",
			Message:   "A new user signed up: mehmet@example.com",
			Type:      models.NotificationUser,
			CreatedAt: now.Add(-5 * time.Minute),
		},
		{
			UserID:    admin.ID,
			Title:     "Report Count Increased",
			Message:   "Report count grew by 15% this month",
			Type:      models.NotificationSystem,
			CreatedAt: now.Add(-time.Hour),
		},
		{
			UserID:    admin.ID,
			Title:     "Security Alert",
			Message:   "Suspicious login attempt detected: 192.168.1.1",
			Type:      models.NotificationSecurity,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			UserID:    admin.ID,
			Title:     "New Tasks Added",
			Message:   "3 new tasks were added to the system",
			Type:      models.NotificationMaintenance,
			IsRead:    true,
			CreatedAt: now.Add(-24 * time.Hour),
		},
	}

	for _, sample := range samples {
		if err := notifications.Create(ctx, sample); err != nil {
			return fmt.Errorf("failed to create sample notification: %w", err)
		}
	}
	logger.Info("Sample notifications created", zap.Int("count", len(samples)))

	return nil
}
