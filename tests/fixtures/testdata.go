// Package fixtures provides builders for test data
package fixtures

import (
	"time"

	"github.com/mailroomhq/mailroom-backend/internal/models"
)

// MailItemBuilder creates test MailItem instances with fluent API
type MailItemBuilder struct {
	item models.MailItem
}

// NewIncomingMailBuilder creates a builder for an incoming item with sensible defaults
func NewIncomingMailBuilder() *MailItemBuilder {
	return &MailItemBuilder{
		item: models.MailItem{
			ID:         "IN001",
			Seq:        1,
			Direction:  models.DirectionIncoming,
			Sender:     "ACME Corp",
			Recipient:  "Sarah Johnson",
			Department: "Legal",
			Type:       models.TypeLetter,
			Priority:   models.PriorityNormal,
			Status:     models.StatusAwaitingPickup,
			CreatedAt:  time.Now(),
		},
	}
}

// NewOutgoingMailBuilder creates a builder for an outgoing item with sensible defaults
func NewOutgoingMailBuilder() *MailItemBuilder {
	return &MailItemBuilder{
		item: models.MailItem{
			ID:               "OUT001",
			Seq:              1,
			Direction:        models.DirectionOutgoing,
			Sender:           "Legal Department",
			Recipient:        "Johnson & Associates",
			RecipientAddress: "450 Park Avenue, New York, NY",
			Type:             models.TypeCertifiedMail,
			Priority:         models.PriorityHigh,
			Status:           models.StatusPending,
			CreatedAt:        time.Now(),
		},
	}
}

// WithID sets the item ID and sequence
func (b *MailItemBuilder) WithID(id string, seq int) *MailItemBuilder {
	b.item.ID = id
	b.item.Seq = seq
	return b
}

// WithSender sets the sender
func (b *MailItemBuilder) WithSender(sender string) *MailItemBuilder {
	b.item.Sender = sender
	return b
}

// WithRecipient sets the recipient
func (b *MailItemBuilder) WithRecipient(recipient string) *MailItemBuilder {
	b.item.Recipient = recipient
	return b
}

// WithStatus sets the current status
func (b *MailItemBuilder) WithStatus(status models.Status) *MailItemBuilder {
	b.item.Status = status
	return b
}

// WithType sets the mail type
func (b *MailItemBuilder) WithType(t models.MailType) *MailItemBuilder {
	b.item.Type = t
	return b
}

// WithCreatedAt sets the logged timestamp
func (b *MailItemBuilder) WithCreatedAt(t time.Time) *MailItemBuilder {
	b.item.CreatedAt = t
	return b
}

// WithTimeline sets the timeline events
func (b *MailItemBuilder) WithTimeline(events ...models.TimelineEvent) *MailItemBuilder {
	b.item.Timeline = events
	return b
}

// Build returns the constructed MailItem
func (b *MailItemBuilder) Build() *models.MailItem {
	return &b.item
}

// BuildValue returns the constructed MailItem as a value (not pointer)
func (b *MailItemBuilder) BuildValue() models.MailItem {
	return b.item
}

// TimelineEventBuilder creates test TimelineEvent instances with fluent API
type TimelineEventBuilder struct {
	event models.TimelineEvent
}

// NewTimelineEventBuilder creates a new TimelineEventBuilder with sensible defaults
func NewTimelineEventBuilder() *TimelineEventBuilder {
	return &TimelineEventBuilder{
		event: models.TimelineEvent{
			MailItemID:      "IN001",
			Sequence:        1,
			Action:          models.ActionLogged,
			ResultingStatus: models.StatusAwaitingPickup,
			ActorLabel:      "Mailroom Staff",
			Description:     "Mail received at mailroom and logged into system",
			Timestamp:       time.Now(),
		},
	}
}

// ForItem sets the owning mail item ID
func (b *TimelineEventBuilder) ForItem(id string) *TimelineEventBuilder {
	b.event.MailItemID = id
	return b
}

// WithSequence sets the event sequence number
func (b *TimelineEventBuilder) WithSequence(seq int) *TimelineEventBuilder {
	b.event.Sequence = seq
	return b
}

// WithAction sets the action and resulting status
func (b *TimelineEventBuilder) WithAction(action string, status models.Status) *TimelineEventBuilder {
	b.event.Action = action
	b.event.ResultingStatus = status
	return b
}

// WithTimestamp sets the event timestamp
func (b *TimelineEventBuilder) WithTimestamp(t time.Time) *TimelineEventBuilder {
	b.event.Timestamp = t
	return b
}

// Build returns the constructed TimelineEvent
func (b *TimelineEventBuilder) Build() *models.TimelineEvent {
	return &b.event
}

// BuildValue returns the constructed TimelineEvent as a value (not pointer)
func (b *TimelineEventBuilder) BuildValue() models.TimelineEvent {
	return b.event
}

// EmployeeBuilder creates test Employee instances with fluent API
type EmployeeBuilder struct {
	employee models.Employee
}

// NewEmployeeBuilder creates a new EmployeeBuilder with sensible defaults
func NewEmployeeBuilder() *EmployeeBuilder {
	return &EmployeeBuilder{
		employee: models.Employee{
			Name:       "Sarah Johnson",
			Department: "Legal",
			Email:      "sarah.johnson@company.com",
		},
	}
}

// WithName sets the employee name
func (b *EmployeeBuilder) WithName(name string) *EmployeeBuilder {
	b.employee.Name = name
	return b
}

// WithDepartment sets the department
func (b *EmployeeBuilder) WithDepartment(department string) *EmployeeBuilder {
	b.employee.Department = department
	return b
}

// WithEmail sets the email address
func (b *EmployeeBuilder) WithEmail(email string) *EmployeeBuilder {
	b.employee.Email = email
	return b
}

// Build returns the constructed Employee
func (b *EmployeeBuilder) Build() *models.Employee {
	return &b.employee
}

// BuildValue returns the constructed Employee as a value (not pointer)
func (b *EmployeeBuilder) BuildValue() models.Employee {
	return b.employee
}
