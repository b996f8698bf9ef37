package domain

import (
	"context"
	"time"
)

// MilestoneRecord marks that a milestone email was delivered to a recipient.
type MilestoneRecord struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Milestone JobKind   `json:"milestone"`
	Recipient string    `json:"recipient"`
	SentAt    time.Time `json:"sent_at"`
}

// MilestoneLedger persists delivered milestones so repeated sweeps can skip them.
// Without a ledger the sweep delivers at least once per detection window.
type MilestoneLedger interface {
	HasSent(ctx context.Context, eventID string, milestone JobKind, recipient string) (bool, error)
	MarkSent(ctx context.Context, rec *MilestoneRecord) error
}
