package services

import (
	"context"
	"fmt"
	"log/slog"

	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/metrics"
)

const (
	templateRsvpConfirmation = "rsvp_confirmation"
	templateRsvpNotification = "rsvp_notification"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, m *metrics.Metrics, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, metrics: m, logger: logger}
}

// SendRsvpConfirmation emails the attendee using the "rsvp_confirmation" template.
func (s *emailService) SendRsvpConfirmation(ctx context.Context, data *domain.RsvpEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp email data is nil")
	}
	return s.send(ctx, templateRsvpConfirmation, data.Email, data)
}

// SendRsvpNotification emails the church office using the "rsvp_notification" template.
func (s *emailService) SendRsvpNotification(ctx context.Context, to string, data *domain.RsvpEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp email data is nil")
	}
	if to == "" {
		return fmt.Errorf("notification address is empty")
	}
	return s.send(ctx, templateRsvpNotification, to, data)
}

func (s *emailService) send(ctx context.Context, template, to string, data any) (err error) {
	defer func() { s.metrics.EmailSent(template, err) }()

	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", template, "to", to)
	return nil
}
