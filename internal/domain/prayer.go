package domain

import (
	"context"
	"strings"
	"time"
)

// PostKind distinguishes prayer requests from testimonies.
type PostKind string

const (
	PostKindRequest   PostKind = "request"
	PostKindTestimony PostKind = "testimony"
)

// AnonymousName is shown when a visitor leaves the name blank.
const AnonymousName = "Anonymous"

// PrayerWallPost is a community prayer request or testimony.
// Posts are created unapproved and only listed publicly after moderation.
// swagger:model PrayerWallPost
type PrayerWallPost struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Request     string    `json:"request"`
	CreatedAt   time.Time `json:"createdAtIso"`
	Approved    bool      `json:"approved"`
	Kind        PostKind  `json:"kind"`
	PrayedCount int       `json:"prayedCount"`
}

// NewPrayerWallPost returns an unapproved post with a zero prayed count. ID is set by the service.
func NewPrayerWallPost(name, request string, kind PostKind, createdAt time.Time) *PrayerWallPost {
	return &PrayerWallPost{
		Name:      name,
		Request:   request,
		Kind:      kind,
		CreatedAt: createdAt,
	}
}

// PrayerPostInput is the public form for a new prayer wall post.
type PrayerPostInput struct {
	Name    string `json:"name"`
	Request string `json:"request"`
	Kind    string `json:"kind"`
}

// Validate normalizes the input in place and returns the first failing field.
func (in *PrayerPostInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Request = strings.TrimSpace(in.Request)
	in.Kind = strings.ToLower(strings.TrimSpace(in.Kind))
	if in.Name == "" {
		in.Name = AnonymousName
	}
	if in.Kind == "" {
		in.Kind = string(PostKindRequest)
	}
	if !LenBetween(in.Name, 1, 80) {
		return Invalid("invalid_name")
	}
	if !LenBetween(in.Request, 1, 1000) {
		return Invalid("invalid_request")
	}
	if in.Kind != string(PostKindRequest) && in.Kind != string(PostKindTestimony) {
		return Invalid("invalid_kind")
	}
	return nil
}

// PrayerWallRepository persists prayer wall posts.
type PrayerWallRepository interface {
	Add(ctx context.Context, post *PrayerWallPost) error
	// ListApproved returns approved posts, newest first.
	ListApproved(ctx context.Context) ([]*PrayerWallPost, error)
	// ListAll returns every post, newest first.
	ListAll(ctx context.Context) ([]*PrayerWallPost, error)
	// IncrementPrayed adds exactly one to the post's prayed count and returns the new count.
	// Returns ErrNotFound when no post has the id.
	IncrementPrayed(ctx context.Context, id string) (int, error)
	Approve(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PrayerWallService defines prayer wall operations for visitors and moderators.
type PrayerWallService interface {
	AddPost(ctx context.Context, in PrayerPostInput) (*PrayerWallPost, error)
	ListApproved(ctx context.Context) ([]*PrayerWallPost, error)
	ListAll(ctx context.Context) ([]*PrayerWallPost, error)
	Pray(ctx context.Context, id string) (int, error)
	Approve(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
