package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mailroomhq/mailroom-backend/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

// ==================== Hub Tests ====================

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	first := NewClient(hub, nil, nil)
	second := NewClient(hub, nil, nil)
	hub.Register(first)
	hub.Register(second)

	hub.BroadcastNotification(notification.Notification{
		ID:    "n1",
		Type:  notification.TypeMail,
		Title: "Mail Logged",
	})

	for _, client := range []*Client{first, second} {
		var msg WSMessage
		require.NoError(t, json.Unmarshal(receive(t, client.send), &msg))
		assert.Equal(t, MessageTypeNotification, msg.Type)
		require.NotNil(t, msg.Notification)
		assert.Equal(t, "Mail Logged", msg.Notification.Title)
	}
}

func TestHub_UnregisteredClientStopsReceiving(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := NewClient(hub, nil, nil)
	hub.Register(client)
	hub.Unregister(client)

	// Unregister closes the send channel
	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHub_SlowClientDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	slow := NewClient(hub, nil, nil)
	slow.send = make(chan []byte) // no buffer, never drained
	fast := NewClient(hub, nil, nil)
	hub.Register(slow)
	hub.Register(fast)

	hub.BroadcastNotification(notification.Notification{ID: "n1", Title: "first"})
	hub.BroadcastNotification(notification.Notification{ID: "n2", Title: "second"})

	receive(t, fast.send)
	receive(t, fast.send)
}
