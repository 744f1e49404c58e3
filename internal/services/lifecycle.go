// Package services implements the mail lifecycle: logging new items,
// enforcing status transitions, and emitting notifications.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/mailroomhq/mailroom-backend/internal/errors"
	"github.com/mailroomhq/mailroom-backend/internal/models"
	"github.com/mailroomhq/mailroom-backend/internal/notification"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
	"github.com/mailroomhq/mailroom-backend/internal/validator"
)

// Default attribution labels for timeline events
const (
	ActorMailroom = "Mailroom Staff"
	ActorSystem   = "System"
)

// MailService owns mail item lifecycle operations. All mutations go through
// here so that every status change lands in the timeline and produces exactly
// one notification.
type MailService struct {
	repo           repository.MailRepository
	notifications  *notification.Center
	defaultCarrier string
	logger         *slog.Logger
}

// NewMailService creates a new MailService
func NewMailService(repo repository.MailRepository, notifications *notification.Center, defaultCarrier string, logger *slog.Logger) *MailService {
	if defaultCarrier == "" {
		defaultCarrier = "FedEx"
	}
	return &MailService{
		repo:           repo,
		notifications:  notifications,
		defaultCarrier: defaultCarrier,
		logger:         logger,
	}
}

// TransitionOptions carries the optional inputs of a status transition
type TransitionOptions struct {
	TrackingNumber string
	Carrier        string
	ActorLabel     string
}

// LogIncoming validates and stores a new incoming mail item with its initial
// timeline event, and emits a notification
func (s *MailService) LogIncoming(ctx context.Context, fields models.IncomingMailFields) (*models.MailItem, error) {
	if err := validator.ValidateIncomingFields(&fields); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &models.MailItem{
		Direction:  models.DirectionIncoming,
		Sender:     fields.Sender,
		Recipient:  fields.Recipient,
		Department: fields.Department,
		Type:       fields.Type,
		Priority:   fields.Priority,
		Status:     models.InitialStatus(models.DirectionIncoming),
		Notes:      fields.Notes,
	}
	event := &models.TimelineEvent{
		Action:          models.ActionLogged,
		Description:     "Mail received at mailroom and logged into system",
		ActorLabel:      ActorMailroom,
		ResultingStatus: item.Status,
		Timestamp:       now,
	}

	if err := s.repo.Create(ctx, item, event); err != nil {
		return nil, apperrors.Wrap(err, "failed to log incoming mail")
	}

	if s.logger != nil {
		s.logger.Info("incoming mail logged",
			slog.String("id", item.ID),
			slog.String("recipient", item.Recipient),
			slog.String("department", item.Department))
	}

	s.notifications.Emit(notification.TypeMail, "Mail Logged",
		fmt.Sprintf("Incoming mail %s for %s has been logged.", item.ID, item.Recipient))

	return item, nil
}

// LogOutgoing validates and stores a new outgoing mail item with its initial
// timeline event, and emits a notification
func (s *MailService) LogOutgoing(ctx context.Context, fields models.OutgoingMailFields) (*models.MailItem, error) {
	if err := validator.ValidateOutgoingFields(&fields); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &models.MailItem{
		Direction:        models.DirectionOutgoing,
		Sender:           fields.Sender,
		Recipient:        fields.Recipient,
		RecipientAddress: fields.RecipientAddress,
		Type:             fields.Type,
		Priority:         fields.Priority,
		Status:           models.InitialStatus(models.DirectionOutgoing),
		Notes:            fields.Notes,
	}
	event := &models.TimelineEvent{
		Action:          models.ActionLogged,
		Description:     "Outgoing mail request created",
		ActorLabel:      ActorMailroom,
		ResultingStatus: item.Status,
		Timestamp:       now,
	}

	if err := s.repo.Create(ctx, item, event); err != nil {
		return nil, apperrors.Wrap(err, "failed to log outgoing mail")
	}

	if s.logger != nil {
		s.logger.Info("outgoing mail logged",
			slog.String("id", item.ID),
			slog.String("recipient", item.Recipient))
	}

	s.notifications.Emit(notification.TypeMail, "Mail Logged Successfully",
		fmt.Sprintf("Outgoing mail %s to %s has been logged.", item.ID, item.Recipient))

	return item, nil
}

// Transition moves a mail item to a legal successor status, appends the
// matching timeline event, and emits one notification. Illegal targets fail
// with no side effects: the repository applies the status update and the
// event in one transaction, and the notification is emitted only afterwards.
func (s *MailService) Transition(ctx context.Context, id string, target models.Status, opts TransitionOptions) (*models.MailItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrMailItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to load mail item")
	}

	if !models.KnownStatus(target) {
		return nil, apperrors.NewValidationError("status", "unknown status: "+string(target))
	}

	if !models.CanTransition(item.Direction, item.Status, target) {
		return nil, apperrors.NewInvalidTransitionError(item.ID, string(item.Status), string(target))
	}

	now := time.Now()
	previous := item.Status
	item.Status = target

	actor := opts.ActorLabel
	if actor == "" {
		actor = ActorSystem
	}

	event := &models.TimelineEvent{
		Sequence:        len(item.Timeline) + 1,
		Action:          models.ActionForStatus(target),
		ActorLabel:      actor,
		ResultingStatus: target,
		Timestamp:       now,
	}

	switch target {
	case models.StatusNotified:
		event.Description = "Recipient notified of waiting mail"
	case models.StatusShipped:
		item.TrackingNumber = opts.TrackingNumber
		if item.TrackingNumber == "" {
			item.TrackingNumber = generateTrackingNumber()
		}
		item.Carrier = opts.Carrier
		if item.Carrier == "" {
			item.Carrier = s.defaultCarrier
		}
		item.ShippedAt = &now
		event.Description = fmt.Sprintf("Mail shipped via %s - %s", item.Carrier, item.TrackingNumber)
	case models.StatusDelivered:
		item.DeliveredAt = &now
		if item.Direction == models.DirectionOutgoing {
			event.Description = "Mail delivered to destination"
		} else {
			event.Description = "Mail delivered to recipient"
		}
	}

	if err := s.repo.ApplyTransition(ctx, item, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrMailItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to apply transition")
	}
	item.Timeline = append(item.Timeline, *event)

	if s.logger != nil {
		s.logger.Info("mail status updated",
			slog.String("id", item.ID),
			slog.String("from", string(previous)),
			slog.String("to", string(target)))
	}

	s.notifications.Emit(notification.TypeSuccess, "Status Updated",
		fmt.Sprintf("Mail %s status updated to %s.", item.ID, strings.ReplaceAll(string(target), "_", " ")))

	return item, nil
}

// generateTrackingNumber builds a carrier-style tracking number
func generateTrackingNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TRK" + raw[:12]
}
