package domain

import (
	"context"
	"time"
)

// HighlightCategory groups album media under an organizer-defined heading.
type HighlightCategory struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestWish is a message left by a guest in the album guestbook.
type GuestWish struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	GuestName string    `json:"guest_name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is an in-app notice shown to the organizer of an event.
type Notification struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type HighlightRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*HighlightCategory, error)
	Delete(ctx context.Context, id string) error
}

type WishRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*GuestWish, error)
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*Notification, error)
	Delete(ctx context.Context, id string) error
}
