package models

import (
	"time"
)

// Timeline actions recorded as events
const (
	ActionLogged    = "logged"
	ActionNotified  = "notified"
	ActionShipped   = "shipped"
	ActionDelivered = "delivered"
)

// TimelineEvent is an immutable, append-only record of one lifecycle action
// for a mail item. The item's current status is always the ResultingStatus
// of its last event.
type TimelineEvent struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	MailItemID      string    `gorm:"not null;size:16;index" json:"mail_item_id"`
	Sequence        int       `gorm:"not null" json:"sequence"`
	Action          string    `gorm:"not null;size:32" json:"action"`
	Description     string    `gorm:"size:500" json:"description"`
	ActorLabel      string    `gorm:"size:100" json:"actor_label"`
	ResultingStatus Status    `gorm:"not null;size:32" json:"resulting_status"`
	Timestamp       time.Time `gorm:"not null" json:"timestamp"`
}

// TableName returns the table name for TimelineEvent
func (TimelineEvent) TableName() string {
	return "timeline_events"
}

// ActionForStatus derives the timeline action verb for a transition into status
func ActionForStatus(status Status) string {
	switch status {
	case StatusNotified:
		return ActionNotified
	case StatusShipped:
		return ActionShipped
	case StatusDelivered:
		return ActionDelivered
	default:
		return ActionLogged
	}
}
