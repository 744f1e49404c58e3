package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/mailroomhq/mailroom-backend/internal/api/response"
	"github.com/mailroomhq/mailroom-backend/internal/notification"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	center *notification.Center
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(center *notification.Center) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// NotificationListResponse represents the notification list with its unread count
type NotificationListResponse struct {
	Notifications []notification.Notification `json:"notifications"`
	UnreadCount   int                         `json:"unread_count"`
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(c echo.Context) error {
	return response.Success(c, NotificationListResponse{
		Notifications: h.center.List(),
		UnreadCount:   h.center.UnreadCount(),
	})
}

// MarkRead handles PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id := c.Param("id")

	if err := h.center.MarkRead(id); err != nil {
		return response.NotFound(c, "notification not found")
	}

	return response.SuccessWithMessage(c, nil, "notification marked as read")
}

// ClearAll handles POST /api/notifications/clear
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	h.center.ClearAll()
	return response.NoContent(c)
}
