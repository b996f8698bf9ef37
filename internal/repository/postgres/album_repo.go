package postgres

import (
	"context"
	"database/sql"

	"guestalbum/internal/domain"
)

type highlightRepository struct {
	DB *sql.DB
}

func NewHighlightRepository(db *sql.DB) domain.HighlightRepository {
	return &highlightRepository{DB: db}
}

func (r *highlightRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.HighlightCategory, error) {
	query := `SELECT id, event_id, name, created_at FROM highlight_categories WHERE event_id = $1 ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.HighlightCategory, 0)
	for rows.Next() {
		h := &domain.HighlightCategory{}
		if err := rows.Scan(&h.ID, &h.EventID, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *highlightRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "highlight_categories", id)
}

type wishRepository struct {
	DB *sql.DB
}

func NewWishRepository(db *sql.DB) domain.WishRepository {
	return &wishRepository{DB: db}
}

func (r *wishRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.GuestWish, error) {
	query := `SELECT id, event_id, guest_name, message, created_at FROM guest_wishes WHERE event_id = $1 ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.GuestWish, 0)
	for rows.Next() {
		w := &domain.GuestWish{}
		if err := rows.Scan(&w.ID, &w.EventID, &w.GuestName, &w.Message, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *wishRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "guest_wishes", id)
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Notification, error) {
	query := `SELECT id, event_id, kind, message, read, created_at FROM notifications WHERE event_id = $1 ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		if err := rows.Scan(&n.ID, &n.EventID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "notifications", id)
}
