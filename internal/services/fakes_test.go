package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"guestalbum/internal/domain"
)

// testLogger discards output so tests don't assert on logs.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// callLog records repository calls in order across fakes.
type callLog struct {
	calls []string
}

func (c *callLog) add(format string, args ...any) {
	if c != nil {
		c.calls = append(c.calls, fmt.Sprintf(format, args...))
	}
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	listErr   error
	deleteErr error
	createErr error
	log       *callLog
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEventRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	all, _ := f.List(ctx)
	var out []*domain.Event
	for _, e := range all {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByEventCode(ctx context.Context, eventCode string) (*domain.Event, error) {
	code := strings.ToLower(strings.TrimSpace(eventCode))
	for _, e := range f.byID {
		if strings.ToLower(e.EventCode) == code {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.PaymentStatus = status
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	f.log.add("delete event %s", id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeMediaRepo is an in-memory MediaRepository for tests.
type fakeMediaRepo struct {
	items     []*domain.MediaItem
	listErr   map[string]error // eventID -> error
	deleteErr map[string]error // mediaID -> error
	createErr error
	nextID    int
	log       *callLog
	lastQuery domain.MediaStatus
}

func (f *fakeMediaRepo) Create(ctx context.Context, item *domain.MediaItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	item.ID = fmt.Sprintf("m-%d", f.nextID)
	f.items = append(f.items, item)
	return nil
}

func (f *fakeMediaRepo) ListByEventID(ctx context.Context, eventID string, status domain.MediaStatus) ([]*domain.MediaItem, error) {
	f.lastQuery = status
	if err := f.listErr[eventID]; err != nil {
		return nil, err
	}
	var out []*domain.MediaItem
	for _, it := range f.items {
		if it.EventID == eventID && (status == "" || it.Status == status) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeMediaRepo) Delete(ctx context.Context, id string) error {
	f.log.add("delete media %s", id)
	return f.deleteErr[id]
}

// fakeChildRepo backs the notification, wish and highlight repositories.
type fakeChildRepo struct {
	kind      string
	ids       map[string][]string // eventID -> ids
	listErr   error
	deleteErr map[string]error
	log       *callLog
}

func (f *fakeChildRepo) list(eventID string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids[eventID], nil
}

func (f *fakeChildRepo) Delete(ctx context.Context, id string) error {
	f.log.add("delete %s %s", f.kind, id)
	return f.deleteErr[id]
}

type fakeNotificationRepo struct{ *fakeChildRepo }

func (f fakeNotificationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Notification, error) {
	ids, err := f.list(eventID)
	var out []*domain.Notification
	for _, id := range ids {
		out = append(out, &domain.Notification{ID: id, EventID: eventID})
	}
	return out, err
}

type fakeWishRepo struct{ *fakeChildRepo }

func (f fakeWishRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.GuestWish, error) {
	ids, err := f.list(eventID)
	var out []*domain.GuestWish
	for _, id := range ids {
		out = append(out, &domain.GuestWish{ID: id, EventID: eventID})
	}
	return out, err
}

type fakeHighlightRepo struct{ *fakeChildRepo }

func (f fakeHighlightRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.HighlightCategory, error) {
	ids, err := f.list(eventID)
	var out []*domain.HighlightCategory
	for _, id := range ids {
		out = append(out, &domain.HighlightCategory{ID: id, EventID: eventID})
	}
	return out, err
}

// fakeEmailService records every email it is asked to send.
type fakeEmailService struct {
	albums   []*domain.PersonalAlbumEmailData
	warnings []*domain.DeletionWarningEmailData
	operator []*domain.DeletionWarningEmailData
	failFor  map[string]error // recipient -> error
}

func (f *fakeEmailService) SendPersonalAlbum(ctx context.Context, data *domain.PersonalAlbumEmailData) error {
	if err := f.failFor[data.Email]; err != nil {
		return err
	}
	f.albums = append(f.albums, data)
	return nil
}

func (f *fakeEmailService) SendDeletionWarning(ctx context.Context, data *domain.DeletionWarningEmailData) error {
	if err := f.failFor[data.Email]; err != nil {
		return err
	}
	f.warnings = append(f.warnings, data)
	return nil
}

func (f *fakeEmailService) SendOperatorDeletionWarning(ctx context.Context, data *domain.DeletionWarningEmailData) error {
	if err := f.failFor[data.Email]; err != nil {
		return err
	}
	f.operator = append(f.operator, data)
	return nil
}

// fakeCascade records which events were purged.
type fakeCascade struct {
	deleted []string
	result  *domain.CascadeResult
}

func (f *fakeCascade) DeleteEventCascade(ctx context.Context, eventID string) *domain.CascadeResult {
	f.deleted = append(f.deleted, eventID)
	if f.result != nil {
		r := *f.result
		r.EventID = eventID
		return &r
	}
	return &domain.CascadeResult{EventID: eventID, Success: true, Deleted: domain.DeletedCounts{Event: true}}
}

// fakeLedger is an in-memory MilestoneLedger.
type fakeLedger struct {
	sent    map[string]bool
	hasErr  error
	markErr error
}

func newFakeLedger() *fakeLedger { return &fakeLedger{sent: make(map[string]bool)} }

func ledgerKey(eventID string, kind domain.JobKind, recipient string) string {
	return eventID + "|" + string(kind) + "|" + recipient
}

func (f *fakeLedger) HasSent(ctx context.Context, eventID string, kind domain.JobKind, recipient string) (bool, error) {
	if f.hasErr != nil {
		return false, f.hasErr
	}
	return f.sent[ledgerKey(eventID, kind, recipient)], nil
}

func (f *fakeLedger) MarkSent(ctx context.Context, rec *domain.MilestoneRecord) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.sent[ledgerKey(rec.EventID, rec.Milestone, rec.Recipient)] = true
	return nil
}

// fakeMailer records sent messages.
type fakeMailer struct {
	sent []domain.EmailMessage
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// fakeRenderer renders "<template>:<recipient>" style content.
type fakeRenderer struct {
	err       error
	templates []string
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.templates = append(f.templates, templateName)
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject " + templateName, "<p>" + templateName + "</p>", templateName, nil
}

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}
