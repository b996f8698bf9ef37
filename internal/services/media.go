package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"guestalbum/internal/domain"
	"guestalbum/internal/lifecycle"
)

type mediaService struct {
	eventRepo      domain.EventRepository
	mediaRepo      domain.MediaRepository
	evaluator      *lifecycle.Evaluator
	clock          domain.Clock
	contextTimeout time.Duration
}

func NewMediaService(eventRepo domain.EventRepository, mediaRepo domain.MediaRepository, evaluator *lifecycle.Evaluator, clock domain.Clock, timeout time.Duration) domain.MediaService {
	return &mediaService{
		eventRepo:      eventRepo,
		mediaRepo:      mediaRepo,
		evaluator:      evaluator,
		clock:          clock,
		contextTimeout: timeout,
	}
}

// AddGuestMedia registers an upload for the event behind eventCode. The event
// must be paid and its upload window open. Guest uploads are approved on arrival.
func (s *mediaService) AddGuestMedia(ctx context.Context, eventCode string, item *domain.MediaItem) (*domain.MediaItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if item == nil || strings.TrimSpace(item.URL) == "" {
		return nil, fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(item.UploaderEmail))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: invalid uploader email", domain.ErrInvalidInput)
		}
	}

	event, err := s.eventRepo.GetByEventCode(ctx, eventCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.PaymentStatus != domain.PaymentPaid {
		return nil, domain.ErrEventNotPaid
	}

	now := s.clock.Now()
	window := s.evaluator.EvaluateUploadWindow(event, now)
	if !window.CanUpload {
		return nil, fmt.Errorf("%w: %s", domain.ErrUploadWindowClosed, window.Reason)
	}

	item.EventID = event.ID
	item.UploaderEmail = email
	item.Status = domain.MediaApproved
	item.CreatedAt = now
	if err := s.mediaRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return item, nil
}
