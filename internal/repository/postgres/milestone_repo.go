package postgres

import (
	"context"
	"database/sql"

	"guestalbum/internal/domain"
)

type milestoneRepository struct {
	DB *sql.DB
}

// NewMilestoneRepository returns a MilestoneLedger backed by the lifecycle_milestones table.
// Rows are removed with their event through the foreign key.
func NewMilestoneRepository(db *sql.DB) domain.MilestoneLedger {
	return &milestoneRepository{DB: db}
}

func (r *milestoneRepository) HasSent(ctx context.Context, eventID string, milestone domain.JobKind, recipient string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM lifecycle_milestones
			WHERE event_id = $1 AND milestone = $2 AND recipient = $3
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, string(milestone), recipient).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *milestoneRepository) MarkSent(ctx context.Context, rec *domain.MilestoneRecord) error {
	query := `
		INSERT INTO lifecycle_milestones (id, event_id, milestone, recipient, sent_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, milestone, recipient) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, rec.ID, rec.EventID, string(rec.Milestone), rec.Recipient, rec.SentAt)
	return err
}
