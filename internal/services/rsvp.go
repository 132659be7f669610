package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/events"
	"praisetabernacle/internal/metrics"
)

const emailDateLayout = "Monday, 2 January 2006, 3:04 PM"

// RsvpConfig holds the settings the RSVP service needs beyond its collaborators.
type RsvpConfig struct {
	// AdminNotifyEmail receives a copy of every RSVP. Empty disables the notification.
	AdminNotifyEmail string
	Location         *time.Location
}

type rsvpService struct {
	repo      domain.RsvpRepository
	events    domain.EventCatalog
	email     domain.EmailService
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	cfg       RsvpConfig
	locks     *keyedMutex
	now       func() time.Time
}

// NewRsvpService returns an RsvpService. Writes for the same event are serialized
// so the capacity check and the upsert cannot interleave with another writer.
func NewRsvpService(
	repo domain.RsvpRepository,
	catalog domain.EventCatalog,
	email domain.EmailService,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg RsvpConfig,
) domain.RsvpService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &rsvpService{
		repo:      repo,
		events:    catalog,
		email:     email,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		cfg:       cfg,
		locks:     newKeyedMutex(),
		now:       time.Now,
	}
}

func (s *rsvpService) Submit(ctx context.Context, in domain.RsvpInput) (*domain.RsvpResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	event, ok := s.events.EventBySlug(in.EventSlug)
	if !ok {
		return nil, domain.Invalid("invalid_event")
	}
	if event.IsPast(s.now(), s.cfg.Location) {
		return nil, domain.ErrEventPast
	}

	rec, kind, remaining, err := s.upsert(ctx, event, in)
	if err != nil {
		var capErr *domain.CapacityError
		if errors.As(err, &capErr) {
			s.metrics.Rsvp("over_capacity")
		}
		return nil, err
	}
	s.metrics.Rsvp(string(kind))

	topic := events.TopicRsvpCreated
	if kind == domain.UpsertUpdated {
		topic = events.TopicRsvpUpdated
	}
	publish(ctx, s.publisher, s.logger, topic, events.RsvpChanged{Rsvp: rec, Kind: kind})

	return &domain.RsvpResult{
		Rsvp:      rec,
		Kind:      kind,
		Remaining: remaining,
		Email:     s.sendEmails(ctx, event, rec, kind),
	}, nil
}

// upsert checks capacity and writes the record while holding the event's lock.
// remaining is nil for events without a capacity.
func (s *rsvpService) upsert(ctx context.Context, event *domain.Event, in domain.RsvpInput) (*domain.RsvpRecord, domain.UpsertKind, *int, error) {
	unlock := s.locks.Lock(event.Slug)
	defer unlock()

	var remaining *int
	if event.Capacity != nil {
		records, err := s.repo.ListByEvent(ctx, event.Slug)
		if err != nil {
			return nil, "", nil, fmt.Errorf("list rsvps: %w", err)
		}
		available := domain.RemainingSeats(*event.Capacity, records, in.Email)
		if int(in.Seats) > available {
			return nil, "", nil, &domain.CapacityError{Remaining: max(available, 0)}
		}
		left := available - int(in.Seats)
		remaining = &left
	}

	rec := domain.NewRsvpRecord(event.Slug, in.Name, in.Email, int(in.Seats), s.now().UTC())
	kind, err := s.repo.Upsert(ctx, rec)
	if err != nil {
		return nil, "", nil, fmt.Errorf("upsert rsvp: %w", err)
	}
	return rec, kind, remaining, nil
}

// sendEmails sends the attendee confirmation and the office notification concurrently.
// Failures are logged and reported in the result; they never fail the RSVP.
func (s *rsvpService) sendEmails(ctx context.Context, event *domain.Event, rec *domain.RsvpRecord, kind domain.UpsertKind) domain.EmailDelivery {
	// The RSVP is already stored; finish sending even if the client goes away.
	ctx = context.WithoutCancel(ctx)
	data := &domain.RsvpEmailData{
		Name:         rec.Name,
		Email:        rec.Email,
		Seats:        rec.Seats,
		Kind:         kind,
		EventSlug:    event.Slug,
		EventTitle:   event.Title,
		EventTitleTa: event.TitleTa,
		EventDate:    event.StartsAt.In(s.cfg.Location).Format(emailDateLayout),
		Location:     event.Location,
	}

	var delivery domain.EmailDelivery
	var g errgroup.Group
	g.Go(func() error {
		if err := s.email.SendRsvpConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "rsvp confirmation email failed", "event", event.Slug, "err", err)
			return nil
		}
		delivery.ConfirmationSent = true
		return nil
	})
	if s.cfg.AdminNotifyEmail != "" {
		g.Go(func() error {
			if err := s.email.SendRsvpNotification(ctx, s.cfg.AdminNotifyEmail, data); err != nil {
				s.logger.WarnContext(ctx, "rsvp notification email failed", "event", event.Slug, "err", err)
				return nil
			}
			delivery.NotifySent = true
			return nil
		})
	}
	_ = g.Wait()
	return delivery
}

func (s *rsvpService) Cancel(ctx context.Context, eventSlug, email string) (int, error) {
	eventSlug = strings.TrimSpace(eventSlug)
	email = domain.NormalizeEmail(email)
	if eventSlug == "" {
		return 0, domain.Invalid("invalid_event")
	}
	if !strings.Contains(email, "@") {
		return 0, domain.Invalid("invalid_email")
	}
	if _, ok := s.events.EventBySlug(eventSlug); !ok {
		return 0, domain.Invalid("invalid_event")
	}

	unlock := s.locks.Lock(eventSlug)
	removed, err := s.repo.Cancel(ctx, eventSlug, email)
	unlock()
	if err != nil {
		return 0, fmt.Errorf("cancel rsvp: %w", err)
	}
	if removed > 0 {
		s.metrics.Rsvp("cancelled")
		publish(ctx, s.publisher, s.logger, events.TopicRsvpCancelled, events.RsvpCancelled{
			EventSlug: eventSlug,
			Email:     email,
			Removed:   removed,
		})
	}
	return removed, nil
}

func (s *rsvpService) Availability(ctx context.Context, eventSlug string) (*domain.SeatAvailability, error) {
	event, ok := s.events.EventBySlug(eventSlug)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.availability(ctx, event)
}

func (s *rsvpService) availability(ctx context.Context, event *domain.Event) (*domain.SeatAvailability, error) {
	reserved, err := s.repo.ReservedSeats(ctx, event.Slug)
	if err != nil {
		return nil, fmt.Errorf("reserved seats: %w", err)
	}
	av := &domain.SeatAvailability{EventSlug: event.Slug, Capacity: event.Capacity, Reserved: reserved}
	if event.Capacity != nil {
		left := max(*event.Capacity-reserved, 0)
		av.Remaining = &left
	}
	return av, nil
}

func (s *rsvpService) ListForEvent(ctx context.Context, eventSlug string) ([]*domain.RsvpRecord, error) {
	if _, ok := s.events.EventBySlug(eventSlug); !ok {
		return nil, domain.ErrNotFound
	}
	records, err := s.repo.ListByEvent(ctx, eventSlug)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return records, nil
}
