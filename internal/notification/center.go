// Package notification holds the process-wide, ephemeral notification list.
// Notifications live only for the lifetime of the process; nothing here is
// persisted.
package notification

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/mailroomhq/mailroom-backend/internal/errors"
)

// Type classifies a notification for display purposes
type Type string

const (
	TypeSuccess Type = "success"
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeMail    Type = "mail"
)

// Notification is an ephemeral, user-facing notice generated by a lifecycle action
type Notification struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}

// Broadcaster pushes emitted notifications to connected clients
type Broadcaster interface {
	BroadcastNotification(n Notification)
}

// Center owns the notification list. Constructed empty at process start;
// it grows via Emit and shrinks only via ClearAll.
type Center struct {
	mu          sync.RWMutex
	items       []*Notification
	broadcaster Broadcaster
	logger      *slog.Logger
}

// NewCenter creates an empty notification center
func NewCenter(logger *slog.Logger) *Center {
	return &Center{logger: logger}
}

// SetBroadcaster attaches a push target for emitted notifications.
// Must be called before any Emit.
func (c *Center) SetBroadcaster(b Broadcaster) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.broadcaster = b
}

// Emit appends a new unread notification and pushes it to subscribers.
// Returns a copy of the stored notification.
func (c *Center) Emit(t Type, title, description string) Notification {
	n := &Notification{
		ID:          uuid.NewString(),
		Type:        t,
		Title:       title,
		Description: description,
		Timestamp:   time.Now(),
	}

	c.mu.Lock()
	// Newest first, matching the panel's display order
	c.items = append([]*Notification{n}, c.items...)
	broadcaster := c.broadcaster
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug("notification emitted",
			slog.String("id", n.ID),
			slog.String("type", string(t)),
			slog.String("title", title))
	}

	if broadcaster != nil {
		broadcaster.BroadcastNotification(*n)
	}

	return *n
}

// List returns a snapshot of all notifications, newest first
func (c *Center) List() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Notification, len(c.items))
	for i, n := range c.items {
		out[i] = *n
	}
	return out
}

// MarkRead marks one notification as read. Marking an already-read
// notification is a no-op, not an error.
func (c *Center) MarkRead(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.items {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

// ClearAll removes every notification regardless of read state
func (c *Center) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// UnreadCount returns the number of unread notifications
func (c *Center) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, n := range c.items {
		if !n.Read {
			count++
		}
	}
	return count
}
