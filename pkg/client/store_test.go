package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"panel/internal/models"
)

func TestStoreApplyPatchReplaces(t *testing.T) {
	t.Parallel()

	store := NewNotificationStore(nil)
	now := time.Now().UTC()

	store.ApplyPatch(models.Notification{ID: "n1", Title: "Security Alert", CreatedAt: now})
	store.ApplyPatch(models.Notification{ID: "n2", Title: "New Tasks Added", CreatedAt: now.Add(-time.Hour)})

	// Patching an existing id replaces in place.
	store.ApplyPatch(models.Notification{ID: "n1", Title: "Security Alert", IsRead: true, CreatedAt: now})

	all := store.GetAll()
	require.Len(t, all, 2)
	require.Equal(t, "n1", all[0].ID)
	require.True(t, all[0].IsRead)
	require.Equal(t, "n2", all[1].ID)
}

func TestStoreInsertKeepsNewestFirst(t *testing.T) {
	t.Parallel()

	store := NewNotificationStore(nil)
	now := time.Now().UTC()

	store.ApplyPatch(models.Notification{ID: "old", CreatedAt: now.Add(-time.Hour)})
	store.ApplyPatch(models.Notification{ID: "new", CreatedAt: now})

	all := store.GetAll()
	require.Equal(t, "new", all[0].ID)
	require.Equal(t, "old", all[1].ID)
}

func TestStoreRemoveAndBroadcast(t *testing.T) {
	t.Parallel()

	store := NewNotificationStore(nil)
	var fired int
	store.Subscribe(func() { fired++ })

	store.ApplyPatch(models.Notification{ID: "n1", CreatedAt: time.Now().UTC()})
	store.Remove("n1")

	require.Empty(t, store.GetAll())
	require.Equal(t, 2, fired)
}

func TestStoreGetAllReturnsCopy(t *testing.T) {
	t.Parallel()

	store := NewNotificationStore(nil)
	store.ApplyPatch(models.Notification{ID: "n1", CreatedAt: time.Now().UTC()})

	all := store.GetAll()
	all[0].IsRead = true

	require.False(t, store.GetAll()[0].IsRead)
}
