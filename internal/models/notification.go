package models

import "time"

// Notification types.
const (
	NotificationUser        = "user"
	NotificationSystem      = "system"
	NotificationSecurity    = "security"
	NotificationMaintenance = "maintenance"
)

// Notification is an informational event directed at a single user.
type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	IsRead    bool      `db:"is_read" json:"isRead"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
