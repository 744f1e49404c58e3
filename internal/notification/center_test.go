package notification

import (
	"sync"
	"testing"

	apperrors "github.com/mailroomhq/mailroom-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBroadcaster captures broadcast notifications
type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []Notification
}

func (b *recordingBroadcaster) BroadcastNotification(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, n)
}

// ==================== Emit Tests ====================

func TestEmit_StoresUnreadWithIDAndTimestamp(t *testing.T) {
	center := NewCenter(nil)

	n := center.Emit(TypeMail, "Mail Logged", "Incoming mail IN001 has been logged.")

	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Timestamp.IsZero())
	assert.False(t, n.Read)

	list := center.List()
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].ID)
}

func TestEmit_NewestFirst(t *testing.T) {
	center := NewCenter(nil)

	center.Emit(TypeMail, "first", "")
	center.Emit(TypeSuccess, "second", "")
	center.Emit(TypeInfo, "third", "")

	list := center.List()
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, "first", list[2].Title)
}

func TestEmit_PushesToBroadcaster(t *testing.T) {
	center := NewCenter(nil)
	b := &recordingBroadcaster{}
	center.SetBroadcaster(b)

	n := center.Emit(TypeSuccess, "Status Updated", "Mail IN001 status updated to delivered.")

	require.Len(t, b.sent, 1)
	assert.Equal(t, n.ID, b.sent[0].ID)
}

func TestEmit_UniqueIDs(t *testing.T) {
	center := NewCenter(nil)

	a := center.Emit(TypeInfo, "a", "")
	b := center.Emit(TypeInfo, "b", "")

	assert.NotEqual(t, a.ID, b.ID)
}

// ==================== MarkRead Tests ====================

func TestMarkRead_SetsRead(t *testing.T) {
	center := NewCenter(nil)
	n := center.Emit(TypeMail, "title", "")

	err := center.MarkRead(n.ID)

	require.NoError(t, err)
	assert.True(t, center.List()[0].Read)
	assert.Zero(t, center.UnreadCount())
}

func TestMarkRead_Idempotent(t *testing.T) {
	center := NewCenter(nil)
	n := center.Emit(TypeMail, "title", "")

	require.NoError(t, center.MarkRead(n.ID))
	assert.NoError(t, center.MarkRead(n.ID))
}

func TestMarkRead_UnknownID(t *testing.T) {
	center := NewCenter(nil)

	err := center.MarkRead("does-not-exist")

	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

// ==================== ClearAll Tests ====================

func TestClearAll_RemovesEverything(t *testing.T) {
	center := NewCenter(nil)
	center.Emit(TypeMail, "a", "")
	n := center.Emit(TypeMail, "b", "")
	require.NoError(t, center.MarkRead(n.ID))

	center.ClearAll()

	assert.Empty(t, center.List())
	assert.Zero(t, center.UnreadCount())
}

// ==================== UnreadCount Tests ====================

func TestUnreadCount_CountsOnlyUnread(t *testing.T) {
	center := NewCenter(nil)
	center.Emit(TypeMail, "a", "")
	n := center.Emit(TypeMail, "b", "")
	center.Emit(TypeMail, "c", "")

	require.NoError(t, center.MarkRead(n.ID))

	assert.Equal(t, 2, center.UnreadCount())
}

func TestCenter_ConcurrentEmit(t *testing.T) {
	center := NewCenter(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			center.Emit(TypeInfo, "concurrent", "")
		}()
	}
	wg.Wait()

	assert.Len(t, center.List(), 50)
	assert.Equal(t, 50, center.UnreadCount())
}
