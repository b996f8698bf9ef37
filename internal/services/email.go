package services

import (
	"context"
	"fmt"
	"log/slog"

	"guestalbum/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendPersonalAlbum sends a guest their album preview using the "personal_album" template.
func (s *emailService) SendPersonalAlbum(ctx context.Context, data *domain.PersonalAlbumEmailData) error {
	if data == nil {
		return fmt.Errorf("personal album data is nil")
	}
	return s.send(ctx, "personal_album", data.Email, data)
}

// SendDeletionWarning warns the organizer that the album is about to be purged.
func (s *emailService) SendDeletionWarning(ctx context.Context, data *domain.DeletionWarningEmailData) error {
	if data == nil {
		return fmt.Errorf("deletion warning data is nil")
	}
	return s.send(ctx, "deletion_warning", data.Email, data)
}

// SendOperatorDeletionWarning notifies the internal operator address of an upcoming purge.
func (s *emailService) SendOperatorDeletionWarning(ctx context.Context, data *domain.DeletionWarningEmailData) error {
	if data == nil {
		return fmt.Errorf("deletion warning data is nil")
	}
	return s.send(ctx, "operator_deletion_warning", data.Email, data)
}

func (s *emailService) send(ctx context.Context, templateName, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	msg := domain.EmailMessage{To: to, Subject: subject, HTMLBody: htmlBody, TextBody: textBody}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", templateName, "to", to)
	return nil
}
