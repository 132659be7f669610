// Package events publishes domain events for downstream consumers such as
// the pastoral care dashboard and the newsletter sync job.
package events

import (
	"context"
	"time"

	"praisetabernacle/internal/domain"
)

// Event topic constants
const (
	TopicRsvpCreated        = "tabernacle.rsvp.created"
	TopicRsvpUpdated        = "tabernacle.rsvp.updated"
	TopicRsvpCancelled      = "tabernacle.rsvp.cancelled"
	TopicSubmissionAppended = "tabernacle.submission.appended"
	TopicPrayerPosted       = "tabernacle.prayer.posted"
)

type RsvpChanged struct {
	Rsvp *domain.RsvpRecord `json:"rsvp"`
	Kind domain.UpsertKind  `json:"kind"`
}

type RsvpCancelled struct {
	EventSlug string `json:"event_slug"`
	Email     string `json:"email"`
	Removed   int    `json:"removed"`
}

// SubmissionAppended carries only the id and kind; consumers read the record from storage.
type SubmissionAppended struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type PrayerPosted struct {
	ID   string          `json:"id"`
	Kind domain.PostKind `json:"kind"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// NoopPublisher discards every event. Used when NATS_URL is empty.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (NoopPublisher) Close() error { return nil }
