package handlers

import (
	"log/slog"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/mailroomhq/mailroom-backend/internal/websocket"
)

// WSHandler upgrades HTTP connections to the notification feed
type WSHandler struct {
	hub      *websocket.Hub
	upgrader gorillaws.Upgrader
	logger   *slog.Logger
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *websocket.Hub, upgrader gorillaws.Upgrader, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		hub:      hub,
		upgrader: upgrader,
		logger:   logger,
	}
}

// Connect handles GET /ws
func (h *WSHandler) Connect(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		}
		return nil
	}

	client := websocket.NewClient(h.hub, conn, h.logger)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	return nil
}
