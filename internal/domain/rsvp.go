package domain

import (
	"context"
	"strings"
	"time"
)

// Seat limits for a single RSVP.
const (
	MinRsvpSeats = 1
	MaxRsvpSeats = 10
)

// RsvpRecord is one attendee's reservation for an event.
// At most one record exists per (EventSlug, lowercased Email).
// swagger:model RsvpRecord
type RsvpRecord struct {
	ID        string    `json:"id"`
	EventSlug string    `json:"eventSlug"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Seats     int       `json:"seats"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewRsvpRecord returns a record for the given reservation. ID is set by the repository on create.
func NewRsvpRecord(eventSlug, name, email string, seats int, now time.Time) *RsvpRecord {
	return &RsvpRecord{
		EventSlug: eventSlug,
		Name:      name,
		Email:     NormalizeEmail(email),
		Seats:     seats,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpsertKind tells whether an upsert created a record or overwrote an existing one.
type UpsertKind string

const (
	UpsertCreated UpsertKind = "created"
	UpsertUpdated UpsertKind = "updated"
)

// RsvpRepository persists RSVP records keyed by (event slug, email).
type RsvpRepository interface {
	// Upsert overwrites name and seats of the record matching (EventSlug, Email) or creates it.
	// The repository fills ID and timestamps on rec.
	Upsert(ctx context.Context, rec *RsvpRecord) (UpsertKind, error)
	ListByEvent(ctx context.Context, eventSlug string) ([]*RsvpRecord, error)
	ReservedSeats(ctx context.Context, eventSlug string) (int, error)
	// Cancel deletes the matching record and returns how many were removed (0 or 1).
	Cancel(ctx context.Context, eventSlug, email string) (int, error)
}

// RemainingSeats returns capacity minus the seats held by everyone except excludeEmail.
func RemainingSeats(capacity int, records []*RsvpRecord, excludeEmail string) int {
	excludeEmail = NormalizeEmail(excludeEmail)
	taken := 0
	for _, r := range records {
		if r.Email == excludeEmail {
			continue
		}
		taken += r.Seats
	}
	return capacity - taken
}

// RsvpInput is the public RSVP form.
type RsvpInput struct {
	EventSlug string  `json:"eventSlug"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Seats     FormInt `json:"seats"`
}

// Validate normalizes the input in place and returns the first failing field.
// Event existence and dates are checked by the service.
func (in *RsvpInput) Validate() error {
	in.EventSlug = strings.TrimSpace(in.EventSlug)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	if in.EventSlug == "" {
		return Invalid("invalid_event")
	}
	if !LenBetween(in.Name, 1, 120) {
		return Invalid("invalid_name")
	}
	if !strings.Contains(in.Email, "@") || !LenBetween(in.Email, 3, 254) {
		return Invalid("invalid_email")
	}
	if in.Seats < MinRsvpSeats || in.Seats > MaxRsvpSeats {
		return Invalid("invalid_seats")
	}
	return nil
}

// EmailDelivery reports which RSVP emails were sent. Delivery never affects the RSVP outcome.
type EmailDelivery struct {
	ConfirmationSent bool `json:"confirmationSent"`
	NotifySent       bool `json:"notifySent"`
}

// RsvpResult is the outcome of a successful RSVP submission.
type RsvpResult struct {
	Rsvp      *RsvpRecord   `json:"rsvp"`
	Kind      UpsertKind    `json:"kind"`
	Remaining *int          `json:"remaining"`
	Email     EmailDelivery `json:"email"`
}

// SeatAvailability summarizes reservations for one event. Capacity and Remaining are nil when unlimited.
type SeatAvailability struct {
	EventSlug string `json:"eventSlug"`
	Capacity  *int   `json:"capacity"`
	Reserved  int    `json:"reserved"`
	Remaining *int   `json:"remaining"`
}

// RsvpService defines RSVP operations.
type RsvpService interface {
	Submit(ctx context.Context, in RsvpInput) (*RsvpResult, error)
	Cancel(ctx context.Context, eventSlug, email string) (int, error)
	Availability(ctx context.Context, eventSlug string) (*SeatAvailability, error)
	ListForEvent(ctx context.Context, eventSlug string) ([]*RsvpRecord, error)
}
