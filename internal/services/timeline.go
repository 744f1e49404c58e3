package services

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/mailroomhq/mailroom-backend/internal/errors"
	"github.com/mailroomhq/mailroom-backend/internal/models"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
)

// TimelineView is the full history of one mail item, derived entirely from
// its stored events
type TimelineView struct {
	MailItemID    string                 `json:"mail_item_id"`
	CurrentStatus models.Status          `json:"current_status"`
	LastActivity  time.Time              `json:"last_activity"`
	Events        []models.TimelineEvent `json:"events"`
}

// TimelineService builds timeline views from stored events
type TimelineService struct {
	repo repository.MailRepository
}

// NewTimelineService creates a new TimelineService
func NewTimelineService(repo repository.MailRepository) *TimelineService {
	return &TimelineService{repo: repo}
}

// Timeline loads an item's events and derives its view. Every item has at
// least its creation event, so the projection never sees an empty history.
func (s *TimelineService) Timeline(ctx context.Context, id string) (*TimelineView, error) {
	events, err := s.repo.Timeline(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrMailItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to load timeline")
	}

	view := &TimelineView{
		MailItemID: id,
		Events:     events,
	}
	if last := len(events) - 1; last >= 0 {
		view.CurrentStatus = events[last].ResultingStatus
		view.LastActivity = events[last].Timestamp
	}
	return view, nil
}
