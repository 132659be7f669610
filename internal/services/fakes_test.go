package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"praisetabernacle/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func intPtr(v int) *int { return &v }

// fakeCatalog is an in-memory EventCatalog and ServeCatalog.
type fakeCatalog struct {
	events        map[string]*domain.Event
	opportunities map[string]bool
	trainings     map[string]bool
}

func (c *fakeCatalog) EventBySlug(slug string) (*domain.Event, bool) {
	e, ok := c.events[slug]
	return e, ok
}

func (c *fakeCatalog) UpcomingEvents(now time.Time) []*domain.Event {
	var out []*domain.Event
	for _, e := range c.events {
		if !e.IsPast(now, time.UTC) {
			out = append(out, e)
		}
	}
	return out
}

func (c *fakeCatalog) Opportunity(id string) (*domain.ServeOpportunity, bool) {
	if c.opportunities[id] {
		return &domain.ServeOpportunity{ID: id}, true
	}
	return nil, false
}

func (c *fakeCatalog) Training(id string) (*domain.ServeOpportunity, bool) {
	if c.trainings[id] {
		return &domain.ServeOpportunity{ID: id}, true
	}
	return nil, false
}

// fakeSubmissionRepo records appends in memory.
type fakeSubmissionRepo struct {
	mu     sync.Mutex
	byKind map[string][]*domain.Submission
	err    error
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{byKind: make(map[string][]*domain.Submission)}
}

func (f *fakeSubmissionRepo) Append(ctx context.Context, sub *domain.Submission) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byKind[sub.Kind] = append(f.byKind[sub.Kind], sub)
	return nil
}

func (f *fakeSubmissionRepo) List(ctx context.Context, kind string) ([]*domain.Submission, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Submission{}, f.byKind[kind]...), nil
}

// fakeRsvpRepo is an in-memory RsvpRepository.
type fakeRsvpRepo struct {
	mu      sync.Mutex
	records []*domain.RsvpRecord
	nextID  int
	err     error
}

func (f *fakeRsvpRepo) Upsert(ctx context.Context, rec *domain.RsvpRecord) (domain.UpsertKind, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.EventSlug == rec.EventSlug && r.Email == rec.Email {
			r.Name, r.Seats = rec.Name, rec.Seats
			*rec = *r
			return domain.UpsertUpdated, nil
		}
	}
	f.nextID++
	rec.ID = fmt.Sprintf("rsvp-%d", f.nextID)
	cp := *rec
	f.records = append(f.records, &cp)
	return domain.UpsertCreated, nil
}

func (f *fakeRsvpRepo) ListByEvent(ctx context.Context, slug string) ([]*domain.RsvpRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.RsvpRecord
	for _, r := range f.records {
		if r.EventSlug == slug {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRsvpRepo) ReservedSeats(ctx context.Context, slug string) (int, error) {
	records, err := f.ListByEvent(ctx, slug)
	total := 0
	for _, r := range records {
		total += r.Seats
	}
	return total, err
}

func (f *fakeRsvpRepo) Cancel(ctx context.Context, slug, email string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.records {
		if r.EventSlug == slug && r.Email == email {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeEmailService records which emails were requested.
type fakeEmailService struct {
	mu              sync.Mutex
	confirmations   []string
	notifications   []string
	confirmationErr error
	notifyErr       error
}

func (f *fakeEmailService) SendRsvpConfirmation(ctx context.Context, data *domain.RsvpEmailData) error {
	if f.confirmationErr != nil {
		return f.confirmationErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, data.Email)
	return nil
}

func (f *fakeEmailService) SendRsvpNotification(ctx context.Context, to string, data *domain.RsvpEmailData) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, to)
	return nil
}

// recordingPublisher captures published topics.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.topics...)
}

var errStorage = errors.New("disk full")
