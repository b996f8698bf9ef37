package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"guestalbum/internal/delivery/http/helpers"
	"guestalbum/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err error

	event         *domain.Event
	events        []*domain.Event
	status        *domain.LifecycleStatus
	cascadeResult *domain.CascadeResult

	lastCreateEvent *domain.Event
	lastEventID     string
	lastOrganizerID string
	lastEventCode   string
	lastPayment     domain.PaymentStatus
}

func (f *fakeEventService) CreateEvent(_ context.Context, event *domain.Event) error {
	f.lastCreateEvent = event
	if f.err != nil {
		return f.err
	}
	event.ID = "evt-1"
	event.EventCode = "abc234"
	return nil
}

func (f *fakeEventService) ListEventsByOrganizer(_ context.Context, organizerID string) ([]*domain.Event, error) {
	f.lastOrganizerID = organizerID
	return f.events, f.err
}

func (f *fakeEventService) GetEvent(_ context.Context, eventID, organizerID string) (*domain.Event, error) {
	f.lastEventID, f.lastOrganizerID = eventID, organizerID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) GetEventStatus(_ context.Context, eventID, organizerID string) (*domain.Event, *domain.LifecycleStatus, error) {
	f.lastEventID, f.lastOrganizerID = eventID, organizerID
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.event, f.status, nil
}

func (f *fakeEventService) GetPublicEventStatus(_ context.Context, eventCode string) (*domain.Event, *domain.LifecycleStatus, error) {
	f.lastEventCode = eventCode
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.event, f.status, nil
}

func (f *fakeEventService) UpdatePaymentStatus(_ context.Context, eventID, organizerID string, status domain.PaymentStatus) (*domain.Event, error) {
	f.lastEventID, f.lastOrganizerID, f.lastPayment = eventID, organizerID, status
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) DeleteEvent(_ context.Context, eventID, organizerID string) (*domain.CascadeResult, error) {
	f.lastEventID, f.lastOrganizerID = eventID, organizerID
	return f.cascadeResult, f.err
}

// fakeMediaService implements domain.MediaService.
type fakeMediaService struct {
	err      error
	lastCode string
	lastItem *domain.MediaItem
}

func (f *fakeMediaService) AddGuestMedia(_ context.Context, eventCode string, item *domain.MediaItem) (*domain.MediaItem, error) {
	f.lastCode, f.lastItem = eventCode, item
	if f.err != nil {
		return nil, f.err
	}
	item.ID = "media-1"
	item.Status = domain.MediaApproved
	return item, nil
}

// fakeLifecycleJobService implements domain.LifecycleJobService.
type fakeLifecycleJobService struct {
	report *domain.RunReport
	err    error
	calls  int
}

func (f *fakeLifecycleJobService) Run(_ context.Context) (*domain.RunReport, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

// decodeError decodes the error envelope and returns its code.
func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error.Code
}
