package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"panel/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) (*models.Notification, error)
	Count(ctx context.Context) (int, error)
}

type notificationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewNotificationRepository(db *sqlx.DB, logger *zap.Logger) NotificationRepository {
	return &notificationRepository{db: db, logger: logger}
}

const notificationColumns = `id, user_id, title, message, type, is_read, created_at`

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, notification.ID, notification.UserID,
		notification.Title, notification.Message, notification.Type, notification.IsRead, notification.CreatedAt)
	return err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	notifications := []*models.Notification{}
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag on a single notification. The owner id is part
// of the WHERE clause, so a row belonging to someone else scans as no rows.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	var notification models.Notification
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2 RETURNING ` + notificationColumns
	if err := r.db.QueryRowxContext(ctx, query, id, userID).StructScan(&notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) Delete(ctx context.Context, userID, id string) (*models.Notification, error) {
	var notification models.Notification
	query := `DELETE FROM notifications WHERE id = $1 AND user_id = $2 RETURNING ` + notificationColumns
	if err := r.db.QueryRowxContext(ctx, query, id, userID).StructScan(&notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications`); err != nil {
		return 0, err
	}
	return count, nil
}
