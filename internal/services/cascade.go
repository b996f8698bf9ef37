package services

import (
	"context"
	"fmt"
	"log/slog"

	"guestalbum/internal/domain"
)

type cascadeService struct {
	notificationRepo domain.NotificationRepository
	wishRepo         domain.WishRepository
	mediaRepo        domain.MediaRepository
	highlightRepo    domain.HighlightRepository
	eventRepo        domain.EventRepository
	logger           *slog.Logger
}

// NewCascadeService returns a CascadeDeleter that removes an event's children
// (notifications, wishes, media, highlight categories) before the event itself.
func NewCascadeService(
	notificationRepo domain.NotificationRepository,
	wishRepo domain.WishRepository,
	mediaRepo domain.MediaRepository,
	highlightRepo domain.HighlightRepository,
	eventRepo domain.EventRepository,
	logger *slog.Logger,
) domain.CascadeDeleter {
	return &cascadeService{
		notificationRepo: notificationRepo,
		wishRepo:         wishRepo,
		mediaRepo:        mediaRepo,
		highlightRepo:    highlightRepo,
		eventRepo:        eventRepo,
		logger:           logger,
	}
}

// DeleteEventCascade deletes every dependent record and then the event.
// A failing child step is recorded and skipped; the event delete is always
// attempted, and only its outcome decides Success. Children left behind by a
// failed step are picked up by a later attempt.
func (s *cascadeService) DeleteEventCascade(ctx context.Context, eventID string) *domain.CascadeResult {
	res := &domain.CascadeResult{EventID: eventID}

	res.Deleted.Notifications = s.deleteChildren(ctx, res, "notifications", func() ([]string, error) {
		items, err := s.notificationRepo.ListByEventID(ctx, eventID)
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		return ids, err
	}, s.notificationRepo.Delete)

	res.Deleted.Wishes = s.deleteChildren(ctx, res, "wishes", func() ([]string, error) {
		items, err := s.wishRepo.ListByEventID(ctx, eventID)
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		return ids, err
	}, s.wishRepo.Delete)

	res.Deleted.Media = s.deleteChildren(ctx, res, "media", func() ([]string, error) {
		items, err := s.mediaRepo.ListByEventID(ctx, eventID, "")
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		return ids, err
	}, s.mediaRepo.Delete)

	res.Deleted.Highlights = s.deleteChildren(ctx, res, "highlights", func() ([]string, error) {
		items, err := s.highlightRepo.ListByEventID(ctx, eventID)
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		return ids, err
	}, s.highlightRepo.Delete)

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		s.logger.ErrorContext(ctx, "cascade: delete event failed", "event_id", eventID, "err", err)
		res.Failures = append(res.Failures, fmt.Sprintf("delete event: %v", err))
		return res
	}
	res.Deleted.Event = true
	res.Success = true
	if len(res.Failures) > 0 {
		s.logger.WarnContext(ctx, "cascade: event deleted with orphaned children", "event_id", eventID, "failures", len(res.Failures))
	}
	return res
}

// deleteChildren deletes the listed ids one by one and returns how many were removed.
func (s *cascadeService) deleteChildren(ctx context.Context, res *domain.CascadeResult, what string, list func() ([]string, error), del func(context.Context, string) error) int {
	ids, err := list()
	if err != nil {
		s.logger.ErrorContext(ctx, "cascade: list failed", "event_id", res.EventID, "records", what, "err", err)
		res.Failures = append(res.Failures, fmt.Sprintf("list %s: %v", what, err))
		return 0
	}
	deleted := 0
	for _, id := range ids {
		if err := del(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "cascade: delete failed", "event_id", res.EventID, "records", what, "id", id, "err", err)
			res.Failures = append(res.Failures, fmt.Sprintf("delete %s %s: %v", what, id, err))
			continue
		}
		deleted++
	}
	return deleted
}
