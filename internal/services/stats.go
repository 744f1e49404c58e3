package services

import (
	"context"
	"time"

	apperrors "github.com/mailroomhq/mailroom-backend/internal/errors"
	"github.com/mailroomhq/mailroom-backend/internal/models"
	"github.com/mailroomhq/mailroom-backend/internal/notification"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
)

// DashboardStats summarizes mailroom activity for the dashboard
type DashboardStats struct {
	LoggedToday         int64 `json:"logged_today"`
	AwaitingPickup      int64 `json:"awaiting_pickup"`
	OutgoingPending     int64 `json:"outgoing_pending"`
	DeliveredToday      int64 `json:"delivered_today"`
	UnreadNotifications int   `json:"unread_notifications"`
}

// StatsService computes dashboard counters
type StatsService struct {
	repo          repository.MailRepository
	notifications *notification.Center
}

// NewStatsService creates a new StatsService
func NewStatsService(repo repository.MailRepository, notifications *notification.Center) *StatsService {
	return &StatsService{repo: repo, notifications: notifications}
}

// Dashboard computes the current counters. "Today" means since local midnight.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	loggedToday, err := s.repo.CountCreatedSince(ctx, midnight)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count logged mail")
	}

	awaiting, err := s.repo.CountByStatus(ctx, models.DirectionIncoming, models.StatusAwaitingPickup)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count awaiting pickup")
	}

	pending, err := s.repo.CountByStatus(ctx, models.DirectionOutgoing, models.StatusPending)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count pending outgoing")
	}

	deliveredToday, err := s.repo.CountDeliveredSince(ctx, midnight)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count delivered mail")
	}

	return &DashboardStats{
		LoggedToday:         loggedToday,
		AwaitingPickup:      awaiting,
		OutgoingPending:     pending,
		DeliveredToday:      deliveredToday,
		UnreadNotifications: s.notifications.UnreadCount(),
	}, nil
}
