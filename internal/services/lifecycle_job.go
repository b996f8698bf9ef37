package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"guestalbum/internal/domain"
	"guestalbum/internal/lifecycle"
)

// LifecycleJobConfig holds the tunables of the lifecycle sweep.
type LifecycleJobConfig struct {
	// AppBaseURL is prefixed to album and dashboard links in emails.
	AppBaseURL string
	// OperatorEmail receives a copy of every deletion warning. Empty disables it.
	OperatorEmail string
	// SendDelay is inserted between consecutive email dispatches.
	SendDelay time.Duration
}

type lifecycleJobService struct {
	eventRepo    domain.EventRepository
	mediaRepo    domain.MediaRepository
	emailService domain.EmailService
	cascade      domain.CascadeDeleter
	ledger       domain.MilestoneLedger
	evaluator    *lifecycle.Evaluator
	clock        domain.Clock
	logger       *slog.Logger
	cfg          LifecycleJobConfig
}

// NewLifecycleJobService returns the periodic sweep over all events.
//
// ledger may be nil. Without a ledger nothing records which milestone emails
// went out, so every run inside a detection window (24 hours for personal
// albums and for deletion warnings) sends them again. Delivery is at least
// once; pass a ledger when duplicates are not acceptable.
func NewLifecycleJobService(
	eventRepo domain.EventRepository,
	mediaRepo domain.MediaRepository,
	emailService domain.EmailService,
	cascade domain.CascadeDeleter,
	ledger domain.MilestoneLedger,
	evaluator *lifecycle.Evaluator,
	clock domain.Clock,
	logger *slog.Logger,
	cfg LifecycleJobConfig,
) domain.LifecycleJobService {
	return &lifecycleJobService{
		eventRepo:    eventRepo,
		mediaRepo:    mediaRepo,
		emailService: emailService,
		cascade:      cascade,
		ledger:       ledger,
		evaluator:    evaluator,
		clock:        clock,
		logger:       logger,
		cfg:          cfg,
	}
}

// sweep is the state of a single run.
type sweep struct {
	report     *domain.RunReport
	now        time.Time
	dispatched int
	logger     *slog.Logger
}

// Run evaluates every event once against the same instant and dispatches the
// due side effects sequentially. Per-event failures end up in the report; only
// a failure to list events or a cancelled context is returned as an error.
func (s *lifecycleJobService) Run(ctx context.Context) (*domain.RunReport, error) {
	now := s.clock.Now()
	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: now,
		Results:   []domain.JobResult{},
	}
	run := &sweep{report: report, now: now, logger: s.logger.With("run_id", report.RunID)}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	report.Events = len(events)
	run.logger.InfoContext(ctx, "lifecycle sweep started", "events", len(events))

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = s.clock.Now()
			return report, fmt.Errorf("lifecycle sweep interrupted: %w", err)
		}
		s.processEvent(ctx, run, ev)
	}

	report.FinishedAt = s.clock.Now()
	run.logger.InfoContext(ctx, "lifecycle sweep finished",
		"events", report.Events,
		"results", len(report.Results),
		"failed", report.Failed(),
	)
	return report, nil
}

// processEvent checks the three milestones independently.
func (s *lifecycleJobService) processEvent(ctx context.Context, run *sweep, ev *domain.Event) {
	if s.evaluator.PersonalAlbumDue(ev, run.now) {
		s.sendPersonalAlbums(ctx, run, ev)
	}
	if s.evaluator.DeletionWarningDue(ev, run.now) {
		s.sendDeletionWarnings(ctx, run, ev)
	}
	if s.evaluator.EvaluateDeletionEligibility(ev, run.now).ShouldDelete {
		res := s.cascade.DeleteEventCascade(ctx, ev.ID)
		var err error
		if !res.Success {
			err = fmt.Errorf("cascade delete: %s", strings.Join(res.Failures, "; "))
		}
		s.record(ctx, run, ev.ID, domain.JobDeletion, "", err)
	}
}

// uploaderAlbum is the approved media of one guest.
type uploaderAlbum struct {
	email string
	name  string
	items []*domain.MediaItem
}

// groupByUploader groups media by normalized uploader email, sorted by email.
// Items without an email cannot be addressed and are left out.
func groupByUploader(items []*domain.MediaItem) []*uploaderAlbum {
	byEmail := make(map[string]*uploaderAlbum)
	for _, it := range items {
		email := strings.ToLower(strings.TrimSpace(it.UploaderEmail))
		if email == "" {
			continue
		}
		album, ok := byEmail[email]
		if !ok {
			album = &uploaderAlbum{email: email}
			byEmail[email] = album
		}
		if album.name == "" {
			album.name = strings.TrimSpace(it.UploaderName)
		}
		album.items = append(album.items, it)
	}
	out := make([]*uploaderAlbum, 0, len(byEmail))
	for _, a := range byEmail {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].email < out[j].email })
	return out
}

func (s *lifecycleJobService) sendPersonalAlbums(ctx context.Context, run *sweep, ev *domain.Event) {
	items, err := s.mediaRepo.ListByEventID(ctx, ev.ID, domain.MediaApproved)
	if err != nil {
		s.record(ctx, run, ev.ID, domain.JobPersonalAlbum, "", fmt.Errorf("list approved media: %w", err))
		return
	}
	for _, album := range groupByUploader(items) {
		if s.alreadySent(ctx, run, ev.ID, domain.JobPersonalAlbum, album.email) {
			continue
		}
		previews := make([]string, 0, domain.MaxAlbumPreviews)
		for _, it := range album.items {
			if len(previews) == domain.MaxAlbumPreviews {
				break
			}
			if p := it.PreviewURL(); p != "" {
				previews = append(previews, p)
			}
		}
		data := &domain.PersonalAlbumEmailData{
			Email:      album.email,
			GuestName:  album.name,
			EventName:  ev.Name,
			AlbumURL:   s.albumURL(ev, album.email),
			PhotoCount: len(album.items),
			Previews:   previews,
		}
		err := s.dispatch(ctx, run, func() error { return s.emailService.SendPersonalAlbum(ctx, data) })
		s.record(ctx, run, ev.ID, domain.JobPersonalAlbum, album.email, err)
	}
}

func (s *lifecycleJobService) sendDeletionWarnings(ctx context.Context, run *sweep, ev *domain.Event) {
	status := s.evaluator.EvaluateDeletionEligibility(ev, run.now)
	days := 1
	if status.DaysRemaining != nil {
		days = *status.DaysRemaining
	}
	data := domain.DeletionWarningEmailData{
		OrganizerEmail: ev.OrganizerEmail,
		EventID:        ev.ID,
		EventName:      ev.Name,
		EventDate:      ev.Date,
		DeletionDate:   status.DeletionDate,
		DaysRemaining:  days,
		DashboardURL:   s.dashboardURL(ev),
	}

	organizer := strings.TrimSpace(ev.OrganizerEmail)
	switch {
	case organizer == "":
		s.record(ctx, run, ev.ID, domain.JobDeletionWarning, "", fmt.Errorf("organizer email: %w", domain.ErrInvalidInput))
	case !s.alreadySent(ctx, run, ev.ID, domain.JobDeletionWarning, organizer):
		orgData := data
		orgData.Email = organizer
		err := s.dispatch(ctx, run, func() error { return s.emailService.SendDeletionWarning(ctx, &orgData) })
		s.record(ctx, run, ev.ID, domain.JobDeletionWarning, organizer, err)
	}

	operator := strings.TrimSpace(s.cfg.OperatorEmail)
	if operator == "" || s.alreadySent(ctx, run, ev.ID, domain.JobDeletionWarning, operator) {
		return
	}
	opData := data
	opData.Email = operator
	err := s.dispatch(ctx, run, func() error { return s.emailService.SendOperatorDeletionWarning(ctx, &opData) })
	s.record(ctx, run, ev.ID, domain.JobDeletionWarning, operator, err)
}

// dispatch waits out the send delay before every email but the first of the run.
func (s *lifecycleJobService) dispatch(ctx context.Context, run *sweep, send func() error) error {
	if run.dispatched > 0 && s.cfg.SendDelay > 0 {
		timer := time.NewTimer(s.cfg.SendDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	run.dispatched++
	return send()
}

// alreadySent consults the ledger. A ledger error counts as not sent.
func (s *lifecycleJobService) alreadySent(ctx context.Context, run *sweep, eventID string, kind domain.JobKind, recipient string) bool {
	if s.ledger == nil {
		return false
	}
	sent, err := s.ledger.HasSent(ctx, eventID, kind, recipient)
	if err != nil {
		run.logger.WarnContext(ctx, "milestone ledger lookup failed", "event_id", eventID, "kind", kind, "err", err)
		return false
	}
	if sent {
		run.report.Results = append(run.report.Results, domain.JobResult{
			EventID: eventID, Kind: kind, Recipient: recipient, Success: true, Skipped: true,
		})
	}
	return sent
}

// record appends a result, logs it and marks successful emails in the ledger.
func (s *lifecycleJobService) record(ctx context.Context, run *sweep, eventID string, kind domain.JobKind, recipient string, err error) {
	res := domain.JobResult{EventID: eventID, Kind: kind, Recipient: recipient, Success: err == nil}
	if err != nil {
		res.Error = err.Error()
		run.logger.ErrorContext(ctx, "lifecycle job failed", "event_id", eventID, "kind", kind, "recipient", recipient, "err", err)
	} else {
		run.logger.InfoContext(ctx, "lifecycle job done", "event_id", eventID, "kind", kind, "recipient", recipient)
	}
	run.report.Results = append(run.report.Results, res)

	if err != nil || s.ledger == nil || kind == domain.JobDeletion {
		return
	}
	rec := &domain.MilestoneRecord{
		ID:        uuid.NewString(),
		EventID:   eventID,
		Milestone: kind,
		Recipient: recipient,
		SentAt:    run.now,
	}
	if err := s.ledger.MarkSent(ctx, rec); err != nil {
		run.logger.WarnContext(ctx, "milestone ledger write failed", "event_id", eventID, "kind", kind, "err", err)
	}
}

func (s *lifecycleJobService) albumURL(ev *domain.Event, email string) string {
	code := ev.EventCode
	if code == "" {
		code = ev.ID
	}
	return fmt.Sprintf("%s/events/%s/album?uploader=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.PathEscape(code), url.QueryEscape(email))
}

func (s *lifecycleJobService) dashboardURL(ev *domain.Event) string {
	return fmt.Sprintf("%s/dashboard/events/%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.PathEscape(ev.ID))
}
