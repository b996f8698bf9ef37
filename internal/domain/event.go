package domain

import (
	"context"
	"time"
)

// PaymentStatus gates guest access to an event. It does not affect lifecycle timing.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Event represents an organizer's guest album event.
// Date is a calendar date (YYYY-MM-DD) and StartTime an optional time of day (HH:MM).
// Both are kept as text so that malformed stored values fail closed in the lifecycle engine.
// swagger:model Event
type Event struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	EventCode      string        `json:"event_code"`
	OrganizerID    string        `json:"organizer_id"`
	OrganizerEmail string        `json:"organizer_email"`
	Date           string        `json:"date"`
	StartTime      string        `json:"start_time,omitempty"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewEvent returns a new pending Event. ID is set by the repository on create.
func NewEvent(name, organizerID, organizerEmail, date, startTime string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:           name,
		OrganizerID:    organizerID,
		OrganizerEmail: organizerEmail,
		Date:           date,
		StartTime:      startTime,
		PaymentStatus:  PaymentPending,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByEventCode(ctx context.Context, eventCode string) (*Event, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines organizer and guest operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	GetEvent(ctx context.Context, eventID, organizerID string) (*Event, error)
	GetEventStatus(ctx context.Context, eventID, organizerID string) (*Event, *LifecycleStatus, error)
	GetPublicEventStatus(ctx context.Context, eventCode string) (*Event, *LifecycleStatus, error)
	UpdatePaymentStatus(ctx context.Context, eventID, organizerID string, status PaymentStatus) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, organizerID string) (*CascadeResult, error)
}
