package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/events"
	"praisetabernacle/internal/idgen"
	"praisetabernacle/internal/metrics"
)

// SubmissionKinds lists the kinds exposed to administrators.
var SubmissionKinds = []string{
	domain.SubmissionBooking,
	domain.SubmissionServe,
	domain.SubmissionNewsletter,
	domain.SubmissionComment,
}

type submissionService struct {
	repo      domain.SubmissionRepository
	serve     domain.ServeCatalog
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewSubmissionService returns a SubmissionService appending to repo.
func NewSubmissionService(
	repo domain.SubmissionRepository,
	serve domain.ServeCatalog,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) domain.SubmissionService {
	return &submissionService{
		repo:      repo,
		serve:     serve,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *submissionService) SubmitBooking(ctx context.Context, in domain.BookingInput, meta domain.RequestMeta) (*domain.Submission, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store(ctx, domain.SubmissionBooking, in.Fields(), meta)
}

func (s *submissionService) SubmitServe(ctx context.Context, in domain.ServeInput, meta domain.RequestMeta) (*domain.Submission, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.OpportunityID != "" {
		if _, ok := s.serve.Opportunity(in.OpportunityID); !ok {
			return nil, domain.Invalid("invalid_opportunity")
		}
	}
	if in.TrainingID != "" {
		if _, ok := s.serve.Training(in.TrainingID); !ok {
			return nil, domain.Invalid("invalid_training")
		}
	}
	return s.store(ctx, domain.SubmissionServe, in.Fields(), meta)
}

func (s *submissionService) SubscribeNewsletter(ctx context.Context, in domain.NewsletterInput, meta domain.RequestMeta) (*domain.Submission, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store(ctx, domain.SubmissionNewsletter, in.Fields(), meta)
}

func (s *submissionService) SubmitComment(ctx context.Context, in domain.CommentInput, meta domain.RequestMeta) (*domain.Submission, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store(ctx, domain.SubmissionComment, in.Fields(), meta)
}

func (s *submissionService) store(ctx context.Context, kind string, fields map[string]any, meta domain.RequestMeta) (*domain.Submission, error) {
	sub := domain.NewSubmission(kind, fields, meta, s.now().UTC())
	sub.ID = idgen.RecordID()
	if err := s.repo.Append(ctx, sub); err != nil {
		return nil, fmt.Errorf("append %s submission: %w", kind, err)
	}
	s.metrics.SubmissionStored(kind)
	publish(ctx, s.publisher, s.logger, events.TopicSubmissionAppended, events.SubmissionAppended{
		ID:        sub.ID,
		Kind:      kind,
		CreatedAt: sub.CreatedAt,
	})
	return sub, nil
}

func (s *submissionService) List(ctx context.Context, kind string, params domain.PaginationParams) ([]*domain.Submission, int, error) {
	if !slices.Contains(SubmissionKinds, kind) {
		return nil, 0, domain.ErrNotFound
	}
	all, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s submissions: %w", kind, err)
	}
	start, end := params.Bounds(len(all))
	return all[start:end], len(all), nil
}

// publish emits an event and logs, rather than returns, any failure.
func publish(ctx context.Context, p events.Publisher, logger *slog.Logger, topic string, event any) {
	if err := p.Publish(ctx, topic, event); err != nil {
		logger.WarnContext(ctx, "publish event failed", "topic", topic, "err", err)
	}
}
