package postgres

import (
	"context"
	"database/sql"

	"guestalbum/internal/domain"
)

type mediaRepository struct {
	DB *sql.DB
}

func NewMediaRepository(db *sql.DB) domain.MediaRepository {
	return &mediaRepository{DB: db}
}

func (r *mediaRepository) Create(ctx context.Context, m *domain.MediaItem) error {
	query := `
		INSERT INTO media_items (event_id, uploader_email, uploader_name, url, thumbnail_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		m.EventID, m.UploaderEmail, m.UploaderName, m.URL, nullString(m.ThumbnailURL), string(m.Status), m.CreatedAt,
	).Scan(&m.ID)
}

func (r *mediaRepository) ListByEventID(ctx context.Context, eventID string, status domain.MediaStatus) ([]*domain.MediaItem, error) {
	query := `
		SELECT id, event_id, uploader_email, uploader_name, url, thumbnail_url, status, created_at
		FROM media_items
		WHERE event_id = $1 AND ($2::text = '' OR status = $2::text)
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*domain.MediaItem, 0)
	for rows.Next() {
		m := &domain.MediaItem{}
		var thumbNull sql.NullString
		var st string
		if err := rows.Scan(&m.ID, &m.EventID, &m.UploaderEmail, &m.UploaderName, &m.URL, &thumbNull, &st, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.ThumbnailURL = thumbNull.String
		m.Status = domain.MediaStatus(st)
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *mediaRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "media_items", id)
}
