// Package lifecycle computes upload windows, deletion eligibility and email
// milestones from an event's scheduled date. Everything here is pure: the
// current time is always passed in.
package lifecycle

import (
	"math"
	"strings"
	"time"

	"guestalbum/internal/domain"
)

const (
	// UploadWindow is how long guests may upload after the event starts.
	UploadWindow = 24 * time.Hour
	// RetentionDays is how long an album is kept after the end of the event day.
	RetentionDays = 14

	personalAlbumFrom = 24 * time.Hour
	personalAlbumTo   = 48 * time.Hour
	warningFromDays   = RetentionDays - 1
)

const (
	dateLayout = "2006-01-02"
)

var timeLayouts = []string{"15:04", "15:04:05"}

// Evaluator evaluates event time windows in a fixed location.
type Evaluator struct {
	loc *time.Location
}

// NewEvaluator returns an Evaluator interpreting event dates in loc.
// A nil loc means time.Local.
func NewEvaluator(loc *time.Location) *Evaluator {
	if loc == nil {
		loc = time.Local
	}
	return &Evaluator{loc: loc}
}

// Location returns the location event dates are interpreted in.
func (e *Evaluator) Location() *time.Location {
	return e.loc
}

// EventStart returns the event date combined with its start time, or midnight
// when no start time is set. ok is false for a missing or malformed schedule.
func (e *Evaluator) EventStart(event *domain.Event) (start time.Time, ok bool) {
	day, ok := e.eventDay(event)
	if !ok {
		return time.Time{}, false
	}
	st := strings.TrimSpace(event.StartTime)
	if st == "" {
		return day, true
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, st); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, e.loc), true
		}
	}
	return time.Time{}, false
}

// EventEnd returns the last millisecond of the event day.
func (e *Evaluator) EventEnd(event *domain.Event) (end time.Time, ok bool) {
	day, ok := e.eventDay(event)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(999*time.Millisecond), e.loc), true
}

// eventDay parses the event date as midnight in the evaluator location.
// Full timestamps are accepted and reduced to their calendar date.
func (e *Evaluator) eventDay(event *domain.Event) (time.Time, bool) {
	if event == nil {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(event.Date)
	if raw == "" {
		return time.Time{}, false
	}
	if day, err := time.ParseInLocation(dateLayout, raw, e.loc); err == nil {
		return day, true
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, e.loc), true
	}
	return time.Time{}, false
}

// EvaluateUploadWindow reports whether guests may upload at now.
// The window opens at the event start and closes 24 hours later; both ends are inclusive.
func (e *Evaluator) EvaluateUploadWindow(event *domain.Event, now time.Time) domain.UploadWindow {
	start, ok := e.EventStart(event)
	if !ok {
		return domain.UploadWindow{CanUpload: false, Reason: domain.ReasonInvalidEventDate}
	}
	end := start.Add(UploadWindow)
	switch {
	case now.Before(start):
		hours := ceilHours(start.Sub(now))
		return domain.UploadWindow{
			CanUpload:      false,
			Reason:         domain.ReasonWindowNotOpen,
			HoursRemaining: &hours,
			OpensAt:        &start,
			ClosesAt:       &end,
		}
	case now.After(end):
		return domain.UploadWindow{
			CanUpload: false,
			Reason:    domain.ReasonWindowClosed,
			OpensAt:   &start,
			ClosesAt:  &end,
		}
	default:
		hours := ceilHours(end.Sub(now))
		return domain.UploadWindow{
			CanUpload:      true,
			Reason:         domain.ReasonWindowOpen,
			HoursRemaining: &hours,
			OpensAt:        &start,
			ClosesAt:       &end,
		}
	}
}

// EvaluateDeletionEligibility reports whether the event is past its retention period.
// A missing or malformed date never makes an event eligible.
func (e *Evaluator) EvaluateDeletionEligibility(event *domain.Event, now time.Time) domain.DeletionStatus {
	deletionDate, ok := e.DeletionDate(event)
	if !ok {
		return domain.DeletionStatus{ShouldDelete: false}
	}
	if now.After(deletionDate) {
		return domain.DeletionStatus{ShouldDelete: true, DeletionDate: deletionDate}
	}
	days := e.daysUntil(now, deletionDate)
	return domain.DeletionStatus{ShouldDelete: false, DeletionDate: deletionDate, DaysRemaining: &days}
}

// DeletionDate returns the end of the event day plus the retention period.
func (e *Evaluator) DeletionDate(event *domain.Event) (time.Time, bool) {
	end, ok := e.EventEnd(event)
	if !ok {
		return time.Time{}, false
	}
	return end.AddDate(0, 0, RetentionDays), true
}

// PersonalAlbumDue reports whether now is in (eventEnd+24h, eventEnd+48h].
func (e *Evaluator) PersonalAlbumDue(event *domain.Event, now time.Time) bool {
	end, ok := e.EventEnd(event)
	if !ok {
		return false
	}
	return inWindow(now, end.Add(personalAlbumFrom), end.Add(personalAlbumTo))
}

// DeletionWarningDue reports whether now is in (eventEnd+13d, eventEnd+14d].
func (e *Evaluator) DeletionWarningDue(event *domain.Event, now time.Time) bool {
	end, ok := e.EventEnd(event)
	if !ok {
		return false
	}
	return inWindow(now, end.AddDate(0, 0, warningFromDays), end.AddDate(0, 0, RetentionDays))
}

// ProjectStatus combines the upload and deletion evaluations into one snapshot.
func (e *Evaluator) ProjectStatus(event *domain.Event, now time.Time) domain.LifecycleStatus {
	upload := e.EvaluateUploadWindow(event, now)
	return domain.LifecycleStatus{
		Upload:   upload,
		Deletion: e.EvaluateDeletionEligibility(event, now),
		ReadOnly: upload.Reason == domain.ReasonWindowClosed,
	}
}

// inWindow reports whether t is in the half-open interval (from, to].
func inWindow(t, from, to time.Time) bool {
	return t.After(from) && !t.After(to)
}

// ceilHours rounds d up to whole hours, never below one.
func ceilHours(d time.Duration) int {
	h := int(math.Ceil(d.Hours()))
	if h < 1 {
		return 1
	}
	return h
}

// daysUntil counts calendar days from now's date to deadline's date in the
// evaluator location. The deadline day itself still counts as one day left.
func (e *Evaluator) daysUntil(now, deadline time.Time) int {
	n := now.In(e.loc)
	from := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, e.loc)
	d := deadline.In(e.loc)
	to := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, e.loc)
	days := int(math.Round(to.Sub(from).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
