package models

import (
	"fmt"
	"time"
)

// Direction indicates whether a mail item was received by the mailroom or sent out of it
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// IDPrefix returns the identifier prefix for the direction (e.g. "IN" for IN001)
func (d Direction) IDPrefix() string {
	if d == DirectionOutgoing {
		return "OUT"
	}
	return "IN"
}

// Valid reports whether the direction is one of the two known values
func (d Direction) Valid() bool {
	return d == DirectionIncoming || d == DirectionOutgoing
}

// Status is a lifecycle state of a mail item. Values are direction-specific,
// except for StatusDelivered which is the terminal state of both directions.
type Status string

const (
	// Incoming lifecycle
	StatusAwaitingPickup Status = "awaiting_pickup"
	StatusNotified       Status = "notified"

	// Outgoing lifecycle
	StatusPending Status = "pending"
	StatusShipped Status = "shipped"

	// Terminal state for both directions
	StatusDelivered Status = "delivered"
)

// MailType categorizes a mail item
type MailType string

const (
	TypeLetter          MailType = "Letter"
	TypePackage         MailType = "Package"
	TypeCertifiedMail   MailType = "Certified Mail"
	TypeExpress         MailType = "Express"
	TypeDocument        MailType = "Document"
	TypeDocumentPackage MailType = "Document Package"
)

// MailTypes lists all valid mail types
var MailTypes = []MailType{
	TypeLetter,
	TypePackage,
	TypeCertifiedMail,
	TypeExpress,
	TypeDocument,
	TypeDocumentPackage,
}

// Priority indicates handling urgency
type Priority string

const (
	PriorityNormal Priority = "Normal"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// MailItem represents one tracked piece of mail, incoming or outgoing
type MailItem struct {
	ID        string    `gorm:"primaryKey;size:16" json:"id"`
	Seq       int       `gorm:"not null;index:idx_mail_items_direction_seq" json:"-"`
	Direction Direction `gorm:"not null;size:16;index:idx_mail_items_direction_seq" json:"direction"`
	Sender    string    `gorm:"not null;size:255" json:"sender"`
	Recipient string    `gorm:"not null;size:255" json:"recipient"`

	// Department is set for incoming items, RecipientAddress for outgoing ones
	Department       string `gorm:"size:100" json:"department,omitempty"`
	RecipientAddress string `gorm:"size:500" json:"recipient_address,omitempty"`

	Type     MailType `gorm:"not null;size:50" json:"type"`
	Priority Priority `gorm:"not null;size:20" json:"priority"`
	Status   Status   `gorm:"not null;size:32;index" json:"status"`

	// Populated once, when an outgoing item transitions to shipped
	TrackingNumber string     `gorm:"size:64" json:"tracking_number,omitempty"`
	Carrier        string     `gorm:"size:64" json:"carrier,omitempty"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`

	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Timeline []TimelineEvent `gorm:"foreignKey:MailItemID;constraint:OnDelete:CASCADE" json:"timeline,omitempty"`
}

// TableName returns the table name for MailItem
func (MailItem) TableName() string {
	return "mail_items"
}

// FormatMailID builds a zero-padded item identifier such as IN001 or OUT042
func FormatMailID(direction Direction, seq int) string {
	return fmt.Sprintf("%s%03d", direction.IDPrefix(), seq)
}

// InitialStatus returns the status assigned to a freshly logged item
func InitialStatus(direction Direction) Status {
	if direction == DirectionOutgoing {
		return StatusPending
	}
	return StatusAwaitingPickup
}

// transitions maps each direction's status to the set of legal successor statuses.
// Delivered has no outgoing edges. Incoming items may skip the notified step;
// outgoing items must pass through shipped.
var transitions = map[Direction]map[Status][]Status{
	DirectionIncoming: {
		StatusAwaitingPickup: {StatusNotified, StatusDelivered},
		StatusNotified:       {StatusDelivered},
		StatusDelivered:      {},
	},
	DirectionOutgoing: {
		StatusPending:   {StatusShipped},
		StatusShipped:   {StatusDelivered},
		StatusDelivered: {},
	},
}

// NextStatuses returns the legal successor statuses for the given direction and status
func NextStatuses(direction Direction, from Status) []Status {
	graph, ok := transitions[direction]
	if !ok {
		return nil
	}
	return graph[from]
}

// CanTransition reports whether target is a direct successor of from
// in the direction's lifecycle graph
func CanTransition(direction Direction, from, target Status) bool {
	for _, next := range NextStatuses(direction, from) {
		if next == target {
			return true
		}
	}
	return false
}

// ValidStatus reports whether the status belongs to the direction's lifecycle
func ValidStatus(direction Direction, status Status) bool {
	graph, ok := transitions[direction]
	if !ok {
		return false
	}
	_, ok = graph[status]
	return ok
}

// KnownStatus reports whether s is a status of either lifecycle
func KnownStatus(s Status) bool {
	switch s {
	case StatusAwaitingPickup, StatusNotified, StatusPending, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// ValidMailType reports whether t is a known mail type
func ValidMailType(t MailType) bool {
	for _, mt := range MailTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is a known priority
func ValidPriority(p Priority) bool {
	return p == PriorityNormal || p == PriorityMedium || p == PriorityHigh
}

// IncomingMailFields holds the caller-supplied fields for logging incoming mail
type IncomingMailFields struct {
	Sender     string   `json:"sender"`
	Recipient  string   `json:"recipient"`
	Department string   `json:"department"`
	Type       MailType `json:"type"`
	Priority   Priority `json:"priority"`
	Notes      string   `json:"notes"`
}

// OutgoingMailFields holds the caller-supplied fields for logging outgoing mail
type OutgoingMailFields struct {
	Sender           string   `json:"sender"`
	Recipient        string   `json:"recipient"`
	RecipientAddress string   `json:"recipient_address"`
	Type             MailType `json:"type"`
	Priority         Priority `json:"priority"`
	Notes            string   `json:"notes"`
}
