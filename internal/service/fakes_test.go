package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"panel/internal/models"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) GetByRole(_ context.Context, role string) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.User
	for _, user := range f.users {
		if user.Role == role {
			copied := *user
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) UpdateAvatar(_ context.Context, id string, avatar string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	user.Avatar = avatar
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id string, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.Role = role
	return nil
}

// fakeNotificationRepo is an in-memory repository.NotificationRepository.
type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*models.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	copied := *notification
	f.notifications[notification.ID] = &copied
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string) ([]*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Notification{}
	for _, n := range f.notifications {
		if n.UserID == userID {
			copied := *n
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, userID, id string) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok || n.UserID != userID {
		return nil, sql.ErrNoRows
	}
	n.IsRead = true
	copied := *n
	return &copied, nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, userID, id string) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok || n.UserID != userID {
		return nil, sql.ErrNoRows
	}
	delete(f.notifications, id)
	copied := *n
	return &copied, nil
}

func (f *fakeNotificationRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications), nil
}
