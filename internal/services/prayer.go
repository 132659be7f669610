package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/events"
	"praisetabernacle/internal/idgen"
	"praisetabernacle/internal/metrics"
)

type prayerWallService struct {
	repo      domain.PrayerWallRepository
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewPrayerWallService returns a PrayerWallService backed by repo.
func NewPrayerWallService(
	repo domain.PrayerWallRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) domain.PrayerWallService {
	return &prayerWallService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// AddPost stores a new unapproved post. Moderators approve it before it is listed.
func (s *prayerWallService) AddPost(ctx context.Context, in domain.PrayerPostInput) (*domain.PrayerWallPost, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	id, err := idgen.PostID()
	if err != nil {
		return nil, err
	}
	post := domain.NewPrayerWallPost(in.Name, in.Request, domain.PostKind(in.Kind), s.now().UTC())
	post.ID = id
	if err := s.repo.Add(ctx, post); err != nil {
		return nil, fmt.Errorf("add prayer wall post: %w", err)
	}
	publish(ctx, s.publisher, s.logger, events.TopicPrayerPosted, events.PrayerPosted{ID: post.ID, Kind: post.Kind})
	return post, nil
}

func (s *prayerWallService) ListApproved(ctx context.Context) ([]*domain.PrayerWallPost, error) {
	posts, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approved posts: %w", err)
	}
	return posts, nil
}

func (s *prayerWallService) ListAll(ctx context.Context) ([]*domain.PrayerWallPost, error) {
	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Pray increments the prayed count of an approved or pending post.
func (s *prayerWallService) Pray(ctx context.Context, id string) (int, error) {
	if id == "" {
		return 0, domain.ErrNotFound
	}
	count, err := s.repo.IncrementPrayed(ctx, id)
	if err != nil {
		return 0, err
	}
	s.metrics.Prayed()
	return count, nil
}

func (s *prayerWallService) Approve(ctx context.Context, id string) (bool, error) {
	return s.repo.Approve(ctx, id)
}

func (s *prayerWallService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
