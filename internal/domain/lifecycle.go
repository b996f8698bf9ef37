package domain

import (
	"context"
	"time"
)

// Reasons reported by the upload window evaluation.
const (
	ReasonWindowNotOpen    = "window not yet open"
	ReasonWindowOpen       = "window open"
	ReasonWindowClosed     = "window closed"
	ReasonInvalidEventDate = "invalid event date"
)

// UploadWindow is the result of evaluating whether guests may upload right now.
// HoursRemaining counts hours until the window opens (not yet open) or closes (open).
type UploadWindow struct {
	CanUpload      bool       `json:"can_upload"`
	Reason         string     `json:"reason"`
	HoursRemaining *int       `json:"hours_remaining,omitempty"`
	OpensAt        *time.Time `json:"opens_at,omitempty"`
	ClosesAt       *time.Time `json:"closes_at,omitempty"`
}

// DeletionStatus is the result of evaluating whether an event is due for purging.
// DeletionDate is zero when the event date is invalid.
type DeletionStatus struct {
	ShouldDelete  bool      `json:"should_delete"`
	DeletionDate  time.Time `json:"deletion_date"`
	DaysRemaining *int      `json:"days_remaining,omitempty"`
}

// LifecycleStatus is the combined snapshot used to render banners and gate actions.
// swagger:model LifecycleStatus
type LifecycleStatus struct {
	Upload   UploadWindow   `json:"upload"`
	Deletion DeletionStatus `json:"deletion"`
	ReadOnly bool           `json:"read_only"`
}

// JobKind identifies the side effect a sweep result refers to.
type JobKind string

const (
	JobPersonalAlbum   JobKind = "personal_album"
	JobDeletionWarning JobKind = "deletion_warning"
	JobDeletion        JobKind = "deletion"
)

// JobResult is the outcome of one dispatched email or deletion during a sweep.
type JobResult struct {
	EventID   string  `json:"event_id"`
	Kind      JobKind `json:"kind"`
	Recipient string  `json:"recipient,omitempty"`
	Success   bool    `json:"success"`
	Skipped   bool    `json:"skipped,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// RunReport summarizes one lifecycle sweep.
// swagger:model RunReport
type RunReport struct {
	RunID      string      `json:"run_id"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Events     int         `json:"events"`
	Results    []JobResult `json:"results"`
}

// Failed returns the number of unsuccessful results.
func (r *RunReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Success {
			n++
		}
	}
	return n
}

// DeletedCounts tallies the records removed by a cascading delete.
type DeletedCounts struct {
	Notifications int  `json:"notifications"`
	Wishes        int  `json:"wishes"`
	Media         int  `json:"media"`
	Highlights    int  `json:"highlights"`
	Event         bool `json:"event"`
}

// CascadeResult is the outcome of deleting an event and its dependent records.
// Success reflects only whether the event record itself was removed.
// swagger:model CascadeResult
type CascadeResult struct {
	EventID  string        `json:"event_id"`
	Success  bool          `json:"success"`
	Deleted  DeletedCounts `json:"deleted"`
	Failures []string      `json:"failures,omitempty"`
}

// CascadeDeleter deletes an event together with all records that reference it.
type CascadeDeleter interface {
	DeleteEventCascade(ctx context.Context, eventID string) *CascadeResult
}

// LifecycleJobService runs the periodic lifecycle sweep over all events.
type LifecycleJobService interface {
	Run(ctx context.Context) (*RunReport, error)
}
