package domain

import (
	"context"
	"time"
)

// MediaStatus is the moderation state of a guest upload.
type MediaStatus string

const (
	MediaPending  MediaStatus = "pending"
	MediaApproved MediaStatus = "approved"
	MediaRejected MediaStatus = "rejected"
)

// MediaItem is a photo or video uploaded by a guest to an event album.
// swagger:model MediaItem
type MediaItem struct {
	ID            string      `json:"id"`
	EventID       string      `json:"event_id"`
	UploaderEmail string      `json:"uploader_email"`
	UploaderName  string      `json:"uploader_name"`
	URL           string      `json:"url"`
	ThumbnailURL  string      `json:"thumbnail_url,omitempty"`
	Status        MediaStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// PreviewURL returns the thumbnail when present, otherwise the full media URL.
func (m *MediaItem) PreviewURL() string {
	if m.ThumbnailURL != "" {
		return m.ThumbnailURL
	}
	return m.URL
}

// MediaRepository defines the interface for media storage.
// ListByEventID returns every item of the event when status is empty.
type MediaRepository interface {
	Create(ctx context.Context, item *MediaItem) error
	ListByEventID(ctx context.Context, eventID string, status MediaStatus) ([]*MediaItem, error)
	Delete(ctx context.Context, id string) error
}

// MediaService registers guest uploads against an event's upload window.
type MediaService interface {
	AddGuestMedia(ctx context.Context, eventCode string, item *MediaItem) (*MediaItem, error)
}
