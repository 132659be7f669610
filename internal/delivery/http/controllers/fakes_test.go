package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"praisetabernacle/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:5000"
	req.Header.Set("User-Agent", "test-agent")
	return req
}

// fakeSubmissionService runs the real input validation and records what would be stored.
type fakeSubmissionService struct {
	stored   []*domain.Submission
	err      error
	lastMeta domain.RequestMeta
	list     []*domain.Submission
	total    int
	lastKind string
	lastPage domain.PaginationParams
}

func (f *fakeSubmissionService) store(kind string, validate func() error, fields func() map[string]any, meta domain.RequestMeta) (*domain.Submission, error) {
	if err := validate(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	f.lastMeta = meta
	sub := &domain.Submission{ID: "sub-1", Kind: kind, Fields: fields(), UserAgent: meta.UserAgent, IP: meta.IP}
	f.stored = append(f.stored, sub)
	return sub, nil
}

func (f *fakeSubmissionService) SubmitBooking(ctx context.Context, in domain.BookingInput, meta domain.RequestMeta) (*domain.Submission, error) {
	return f.store(domain.SubmissionBooking, in.Validate, in.Fields, meta)
}

func (f *fakeSubmissionService) SubmitServe(ctx context.Context, in domain.ServeInput, meta domain.RequestMeta) (*domain.Submission, error) {
	return f.store(domain.SubmissionServe, in.Validate, in.Fields, meta)
}

func (f *fakeSubmissionService) SubscribeNewsletter(ctx context.Context, in domain.NewsletterInput, meta domain.RequestMeta) (*domain.Submission, error) {
	return f.store(domain.SubmissionNewsletter, in.Validate, in.Fields, meta)
}

func (f *fakeSubmissionService) SubmitComment(ctx context.Context, in domain.CommentInput, meta domain.RequestMeta) (*domain.Submission, error) {
	return f.store(domain.SubmissionComment, in.Validate, in.Fields, meta)
}

func (f *fakeSubmissionService) List(ctx context.Context, kind string, params domain.PaginationParams) ([]*domain.Submission, int, error) {
	f.lastKind, f.lastPage = kind, params
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.list, f.total, nil
}

type fakeRsvpService struct {
	result       *domain.RsvpResult
	err          error
	calls        int
	removed      int
	availability *domain.SeatAvailability
	records      []*domain.RsvpRecord
	lastSlug     string
	lastEmail    string
}

func (f *fakeRsvpService) Submit(ctx context.Context, in domain.RsvpInput) (*domain.RsvpResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRsvpService) Cancel(ctx context.Context, slug, email string) (int, error) {
	f.calls++
	f.lastSlug, f.lastEmail = slug, email
	return f.removed, f.err
}

func (f *fakeRsvpService) Availability(ctx context.Context, slug string) (*domain.SeatAvailability, error) {
	f.lastSlug = slug
	if f.err != nil {
		return nil, f.err
	}
	return f.availability, nil
}

func (f *fakeRsvpService) ListForEvent(ctx context.Context, slug string) ([]*domain.RsvpRecord, error) {
	f.lastSlug = slug
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakePrayerService struct {
	posts  []*domain.PrayerWallPost
	added  *domain.PrayerWallPost
	count  int
	found  bool
	err    error
	calls  int
	lastID string
}

func (f *fakePrayerService) AddPost(ctx context.Context, in domain.PrayerPostInput) (*domain.PrayerWallPost, error) {
	f.calls++
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	f.added = &domain.PrayerWallPost{ID: "pw_test", Name: in.Name, Request: in.Request, Kind: domain.PostKind(in.Kind)}
	return f.added, nil
}

func (f *fakePrayerService) ListApproved(ctx context.Context) ([]*domain.PrayerWallPost, error) {
	return f.posts, f.err
}

func (f *fakePrayerService) ListAll(ctx context.Context) ([]*domain.PrayerWallPost, error) {
	return f.posts, f.err
}

func (f *fakePrayerService) Pray(ctx context.Context, id string) (int, error) {
	f.lastID = id
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func (f *fakePrayerService) Approve(ctx context.Context, id string) (bool, error) {
	f.lastID = id
	return f.found, f.err
}

func (f *fakePrayerService) Delete(ctx context.Context, id string) (bool, error) {
	f.lastID = id
	return f.found, f.err
}
