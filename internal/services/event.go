package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"guestalbum/internal/domain"
	"guestalbum/internal/lifecycle"
)

type eventService struct {
	eventRepo      domain.EventRepository
	cascade        domain.CascadeDeleter
	evaluator      *lifecycle.Evaluator
	clock          domain.Clock
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	cascade domain.CascadeDeleter,
	evaluator *lifecycle.Evaluator,
	clock domain.Clock,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		cascade:        cascade,
		evaluator:      evaluator,
		clock:          clock,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OrganizerID == "" {
		return fmt.Errorf("event organizer is required")
	}
	if strings.TrimSpace(event.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if _, ok := s.evaluator.EventStart(event); !ok {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.ReasonInvalidEventDate)
	}

	now := s.clock.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.PaymentStatus == "" {
		event.PaymentStatus = domain.PaymentPending
	}

	if event.EventCode == "" {
		code, err := generateEventCode()
		if err != nil {
			return fmt.Errorf("generate event code: %w", err)
		}
		event.EventCode = code
	}

	return s.eventRepo.Create(ctx, event)
}

const eventCodeLength = 6

var eventCodeAlphabet = []rune("abcdefghijkmnpqrstuvwxyz23456789")

// generateEventCode returns the short code printed in the guest QR code.
func generateEventCode() (string, error) {
	b := make([]rune, eventCodeLength)
	max := big.NewInt(int64(len(eventCodeAlphabet)))
	for i := 0; i < eventCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = eventCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

func (s *eventService) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListByOrganizerID(ctx, organizerID)
}

func (s *eventService) GetEvent(ctx context.Context, eventID, organizerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.ownedEvent(ctx, eventID, organizerID)
}

func (s *eventService) GetEventStatus(ctx context.Context, eventID, organizerID string) (*domain.Event, *domain.LifecycleStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.ownedEvent(ctx, eventID, organizerID)
	if err != nil {
		return nil, nil, err
	}
	status := s.evaluator.ProjectStatus(event, s.clock.Now())
	return event, &status, nil
}

// GetPublicEventStatus is the guest view reached through the QR code.
// Unpaid events are not exposed to guests.
func (s *eventService) GetPublicEventStatus(ctx context.Context, eventCode string) (*domain.Event, *domain.LifecycleStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByEventCode(ctx, eventCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	if event.PaymentStatus != domain.PaymentPaid {
		return nil, nil, domain.ErrEventNotPaid
	}
	status := s.evaluator.ProjectStatus(event, s.clock.Now())
	return event, &status, nil
}

func (s *eventService) UpdatePaymentStatus(ctx context.Context, eventID, organizerID string, status domain.PaymentStatus) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.ownedEvent(ctx, eventID, organizerID); err != nil {
		return nil, err
	}
	updated, err := s.eventRepo.UpdatePaymentStatus(ctx, eventID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	return updated, nil
}

// DeleteEvent lets the organizer purge an album before it expires.
func (s *eventService) DeleteEvent(ctx context.Context, eventID, organizerID string) (*domain.CascadeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, organizerID); err != nil {
		return nil, err
	}
	res := s.cascade.DeleteEventCascade(ctx, eventID)
	if !res.Success {
		return res, fmt.Errorf("delete event: %s", strings.Join(res.Failures, "; "))
	}
	return res, nil
}

func (s *eventService) ownedEvent(ctx context.Context, eventID, organizerID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}
