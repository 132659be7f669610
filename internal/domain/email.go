package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RsvpEmailData holds data for the RSVP confirmation and admin notification emails.
type RsvpEmailData struct {
	Name         string
	Email        string
	Seats        int
	Kind         UpsertKind
	EventSlug    string
	EventTitle   string
	EventTitleTa string
	EventDate    string
	Location     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRsvpConfirmation(ctx context.Context, data *RsvpEmailData) error
	SendRsvpNotification(ctx context.Context, to string, data *RsvpEmailData) error
}
