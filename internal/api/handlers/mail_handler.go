// Package handlers contains the HTTP handlers for the mailroom API
package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mailroomhq/mailroom-backend/internal/api/response"
	apperrors "github.com/mailroomhq/mailroom-backend/internal/errors"
	"github.com/mailroomhq/mailroom-backend/internal/models"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
	"github.com/mailroomhq/mailroom-backend/internal/services"
	"github.com/mailroomhq/mailroom-backend/internal/validator"
)

// dateLayout is the calendar-date format accepted by search filters
const dateLayout = "2006-01-02"

// MailHandler handles mail item HTTP requests
type MailHandler struct {
	mailRepo    repository.MailRepository
	mailService *services.MailService
	search      *services.SearchService
	timeline    *services.TimelineService
}

// NewMailHandler creates a new MailHandler
func NewMailHandler(mailRepo repository.MailRepository, mailService *services.MailService, search *services.SearchService, timeline *services.TimelineService) *MailHandler {
	return &MailHandler{
		mailRepo:    mailRepo,
		mailService: mailService,
		search:      search,
		timeline:    timeline,
	}
}

// TransitionRequest represents the request body for a status transition
type TransitionRequest struct {
	Status         models.Status `json:"status"`
	TrackingNumber string        `json:"tracking_number"`
	Carrier        string        `json:"carrier"`
	Actor          string        `json:"actor"`
}

// CreateIncoming handles POST /api/mail/incoming
func (h *MailHandler) CreateIncoming(c echo.Context) error {
	var fields models.IncomingMailFields
	if err := c.Bind(&fields); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	item, err := h.mailService.LogIncoming(c.Request().Context(), fields)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

// CreateOutgoing handles POST /api/mail/outgoing
func (h *MailHandler) CreateOutgoing(c echo.Context) error {
	var fields models.OutgoingMailFields
	if err := c.Bind(&fields); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	item, err := h.mailService.LogOutgoing(c.Request().Context(), fields)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

// List handles GET /api/mail
func (h *MailHandler) List(c echo.Context) error {
	direction := models.Direction(c.QueryParam("direction"))
	if direction != "" && !direction.Valid() {
		return response.BadRequest(c, "invalid direction")
	}

	limit := 0
	offset := 0
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil {
			offset = parsed
		}
	}
	limit, offset = validator.ValidatePagination(limit, offset)

	items, total, err := h.mailRepo.List(c.Request().Context(), direction, limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list mail items")
	}

	return response.Paginated(c, items, total, limit, offset)
}

// Get handles GET /api/mail/:id
func (h *MailHandler) Get(c echo.Context) error {
	id := c.Param("id")

	item, err := h.mailRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "mail item not found")
		}
		return response.InternalError(c, "failed to get mail item")
	}

	return response.Success(c, item)
}

// Transition handles POST /api/mail/:id/transition
func (h *MailHandler) Transition(c echo.Context) error {
	id := c.Param("id")

	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "status is required")
	}

	item, err := h.mailService.Transition(c.Request().Context(), id, req.Status, services.TransitionOptions{
		TrackingNumber: req.TrackingNumber,
		Carrier:        req.Carrier,
		ActorLabel:     req.Actor,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

// Timeline handles GET /api/mail/:id/timeline
func (h *MailHandler) Timeline(c echo.Context) error {
	id := c.Param("id")

	view, err := h.timeline.Timeline(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

// Search handles GET /api/mail/search
func (h *MailHandler) Search(c echo.Context) error {
	filter := repository.SearchFilter{
		Query:     validator.SanitizeString(c.QueryParam("q"), 255),
		Type:      models.MailType(c.QueryParam("type")),
		Status:    models.Status(c.QueryParam("status")),
		Direction: models.Direction(c.QueryParam("direction")),
	}

	if v := c.QueryParam("date_start"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return response.Error(c, apperrors.NewInvalidQueryError("date_start must use YYYY-MM-DD format"))
		}
		filter.DateStart = &t
	}
	if v := c.QueryParam("date_end"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return response.Error(c, apperrors.NewInvalidQueryError("date_end must use YYYY-MM-DD format"))
		}
		filter.DateEnd = &t
	}

	items, err := h.search.Search(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}
