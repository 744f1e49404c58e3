// Package websocket pushes notifications to connected dashboard clients.
// The feed is broadcast-only: every connected client receives every
// notification, and clients send nothing but control frames.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mailroomhq/mailroom-backend/internal/notification"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeNotification MessageType = "notification"
	MessageTypeError        MessageType = "error"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type         MessageType                `json:"type"`
	Notification *notification.Notification `json:"notification,omitempty"`
	Error        string                     `json:"error,omitempty"`
}

// Hub maintains the set of active clients and broadcasts notifications
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Broadcast to all clients
	broadcast chan []byte

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Logger
	logger *slog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client registered")
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client unregistered")
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client buffer full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastNotification pushes a notification to every connected client.
// Implements notification.Broadcaster.
func (h *Hub) BroadcastNotification(n notification.Notification) {
	msg := WSMessage{
		Type:         MessageTypeNotification,
		Notification: &n,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to marshal broadcast message", slog.Any("error", err))
		}
		return
	}

	h.broadcast <- data
}
