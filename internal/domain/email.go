package domain

import (
	"context"
	"time"
)

// EmailMessage is a single outgoing email.
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// MaxAlbumPreviews is the number of thumbnails included in a personal album email.
const MaxAlbumPreviews = 12

// PersonalAlbumEmailData holds data for the email sent to each guest after the event.
type PersonalAlbumEmailData struct {
	Email      string
	GuestName  string
	EventName  string
	AlbumURL   string
	PhotoCount int
	Previews   []string
}

// DeletionWarningEmailData holds data for the warning sent the day before an album is purged.
type DeletionWarningEmailData struct {
	Email          string
	OrganizerEmail string
	EventID        string
	EventName      string
	EventDate      string
	DeletionDate   time.Time
	DaysRemaining  int
	DashboardURL   string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendPersonalAlbum(ctx context.Context, data *PersonalAlbumEmailData) error
	SendDeletionWarning(ctx context.Context, data *DeletionWarningEmailData) error
	SendOperatorDeletionWarning(ctx context.Context, data *DeletionWarningEmailData) error
}
