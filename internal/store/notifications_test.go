package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baatolabs/baatometrics-api/internal/domain/notification"
	"github.com/baatolabs/baatometrics-api/internal/storage"
	"github.com/baatolabs/baatometrics-api/internal/storage/memory"
)

func TestWelcomeSeed(t *testing.T) {
	backend := memory.New()
	notifications := NewNotificationStore(backend)

	all := notifications.All()
	require.Len(t, all, 1, "A first run must seed the welcome notification")
	assert.Equal(t, "Welcome to BaatoMetrics", all[0].Title)
	assert.True(t, all[0].Unread)
	assert.Equal(t, 1, notifications.UnreadCount())
}

func TestSeedOnlyOnFirstRun(t *testing.T) {
	backend := memory.New()

	first := NewNotificationStore(backend)
	require.NoError(t, first.Clear())

	// an explicitly cleared (empty but present) list must stay empty
	reopened := NewNotificationStore(backend)
	assert.Empty(t, reopened.All(), "The welcome seed applies only when nothing was ever stored")
}

func TestAddPrepends(t *testing.T) {
	backend := memory.New()
	notifications := NewNotificationStore(backend)

	_, err := notifications.Add(notification.KindSuccess, "Week 1 completed", "12.5 km mapped", notification.ActionWeekCompleted)
	require.NoError(t, err)
	_, err = notifications.Add(notification.KindInfo, "Data uploaded", "3 images added", notification.ActionDataUploaded)
	require.NoError(t, err)

	all := notifications.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Data uploaded", all[0].Title, "Newest notification must come first")
	assert.Equal(t, "Week 1 completed", all[1].Title)
	assert.Equal(t, 3, notifications.UnreadCount())

	// persisted
	assert.Len(t, NewNotificationStore(backend).All(), 3)
}

func TestMarkRead(t *testing.T) {
	notifications := NewNotificationStore(memory.New())

	n, err := notifications.Add(notification.KindInfo, "t", "m", notification.ActionSystem)
	require.NoError(t, err)

	require.NoError(t, notifications.MarkRead(n.ID))
	assert.Equal(t, 1, notifications.UnreadCount(), "Only the marked entry loses its unread flag")

	err = notifications.MarkRead("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	notifications := NewNotificationStore(memory.New())

	_, err := notifications.Add(notification.KindWarning, "t", "m", notification.ActionSystem)
	require.NoError(t, err)

	require.NoError(t, notifications.MarkAllRead())
	assert.Equal(t, 0, notifications.UnreadCount())
}

func TestRemoveAndClear(t *testing.T) {
	backend := memory.New()
	notifications := NewNotificationStore(backend)

	n, err := notifications.Add(notification.KindError, "t", "m", notification.ActionSystem)
	require.NoError(t, err)

	require.NoError(t, notifications.Remove(n.ID))
	require.Len(t, notifications.All(), 1)

	err = notifications.Remove(n.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, notifications.Clear())
	assert.Empty(t, notifications.All())
	assert.Empty(t, NewNotificationStore(backend).All())
}

func TestCorruptNotificationListStartsEmpty(t *testing.T) {
	backend := memory.New()
	require.NoError(t, backend.Save(storage.KeyNotifications, []byte("oops")))

	notifications := NewNotificationStore(backend)
	assert.Empty(t, notifications.All(),
		"A corrupted list falls back to empty without re-seeding the welcome entry")
}
