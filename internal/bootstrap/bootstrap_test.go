package bootstrap

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"panel/internal/models"
)

type memUserRepo struct {
	users map[string]*models.User
}

func (m *memUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) GetByRole(_ context.Context, role string) ([]*models.User, error) {
	var result []*models.User
	for _, user := range m.users {
		if user.Role == role {
			result = append(result, user)
		}
	}
	return result, nil
}

func (m *memUserRepo) UpdateProfile(_ context.Context, id string, _ models.ProfileUpdate) (*models.User, error) {
	return m.GetByID(context.Background(), id)
}

func (m *memUserRepo) UpdateAvatar(_ context.Context, id string, _ string) (*models.User, error) {
	return m.GetByID(context.Background(), id)
}

func (m *memUserRepo) UpdatePasswordHash(_ context.Context, id string, hash string) error {
	user, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = hash
	return nil
}

func (m *memUserRepo) UpdateRole(_ context.Context, id string, role string) error {
	user, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.Role = role
	return nil
}

type memNotificationRepo struct {
	notifications []*models.Notification
}

func (m *memNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *memNotificationRepo) ListByUser(_ context.Context, userID string) ([]*models.Notification, error) {
	var result []*models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *memNotificationRepo) MarkRead(_ context.Context, _, _ string) (*models.Notification, error) {
	return nil, sql.ErrNoRows
}

func (m *memNotificationRepo) MarkAllRead(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (m *memNotificationRepo) Delete(_ context.Context, _, _ string) (*models.Notification, error) {
	return nil, sql.ErrNoRows
}

func (m *memNotificationRepo) Count(_ context.Context) (int, error) {
	return len(m.notifications), nil
}

func TestSeedFirstRun(t *testing.T) {
	users := &memUserRepo{users: make(map[string]*models.User)}
	notifications := &memNotificationRepo{}
	ctx := context.Background()

	require.NoError(t, Seed(ctx, users, notifications, zap.NewNop()))

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdministrator, admin.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	count, err := notifications.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestSeedIsIdempotent(t *testing.T) {
	users := &memUserRepo{users: make(map[string]*models.User)}
	notifications := &memNotificationRepo{}
	ctx := context.Background()

	require.NoError(t, Seed(ctx, users, notifications, zap.NewNop()))
	require.NoError(t, Seed(ctx, users, notifications, zap.NewNop()))

	require.Len(t, users.users, 1)
	count, err := notifications.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestSeedReassertsAdminRole(t *testing.T) {
	users := &memUserRepo{users: make(map[string]*models.User)}
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &models.User{Username: "admin", Role: models.RoleMember}))
	notifications := &memNotificationRepo{
		notifications: []*models.Notification{{UserID: "x", Title: "existing"}},
	}

	require.NoError(t, Seed(ctx, users, notifications, zap.NewNop()))

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdministrator, admin.Role)

	// Existing notifications suppress the samples.
	count, err := notifications.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
