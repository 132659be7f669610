package domain

import (
	"context"
	"strings"
	"time"
)

// Submission kinds persisted by the SubmissionRepository.
const (
	SubmissionBooking    = "booking"
	SubmissionServe      = "serve"
	SubmissionNewsletter = "newsletter"
	SubmissionComment    = "comment"
)

// Submission is an immutable, append-only form record.
// swagger:model Submission
type Submission struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"createdAt"`
	UserAgent string         `json:"userAgent"`
	IP        string         `json:"ip"`
}

// RequestMeta carries the client details stored alongside every submission.
type RequestMeta struct {
	UserAgent string
	IP        string
}

// NewSubmission returns a Submission stamped with meta and createdAt. ID is set by the service.
func NewSubmission(kind string, fields map[string]any, meta RequestMeta, createdAt time.Time) *Submission {
	return &Submission{
		Kind:      kind,
		Fields:    fields,
		CreatedAt: createdAt,
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
	}
}

// SubmissionRepository appends submissions to per-kind collections.
// List exists for administration and tests; the public API never reads submissions back.
type SubmissionRepository interface {
	Append(ctx context.Context, sub *Submission) error
	List(ctx context.Context, kind string) ([]*Submission, error)
}

// BookingInput is a building or room booking request.
type BookingInput struct {
	BookingType    string  `json:"bookingType"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Organization   string  `json:"organization"`
	DateISO        string  `json:"dateIso"`
	StartTimeLocal string  `json:"startTimeLocal"`
	EndTimeLocal   string  `json:"endTimeLocal"`
	Attendees      FormInt `json:"attendees"`
	Details        string  `json:"details"`
}

// Validate normalizes the input in place and returns the first failing field.
func (in *BookingInput) Validate() error {
	in.BookingType = strings.ToLower(strings.TrimSpace(in.BookingType))
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Phone = NormalizePhone(in.Phone)
	in.Organization = strings.TrimSpace(in.Organization)
	in.DateISO = strings.TrimSpace(in.DateISO)
	in.StartTimeLocal = strings.TrimSpace(in.StartTimeLocal)
	in.EndTimeLocal = strings.TrimSpace(in.EndTimeLocal)
	in.Details = strings.TrimSpace(in.Details)

	if in.BookingType != "building" && in.BookingType != "room" {
		return Invalid("invalid_booking_type")
	}
	if !LenBetween(in.Name, 1, 120) {
		return Invalid("invalid_name")
	}
	if !ValidEmail(in.Email) {
		return Invalid("invalid_email")
	}
	if in.Phone != "" && !ValidPhone(in.Phone) {
		return Invalid("invalid_phone")
	}
	if !LenBetween(in.Organization, 0, 160) {
		return Invalid("invalid_organization")
	}
	if !ValidISODate(in.DateISO) {
		return Invalid("invalid_date")
	}
	if !ValidClock(in.StartTimeLocal) {
		return Invalid("invalid_start_time")
	}
	if !ValidClock(in.EndTimeLocal) {
		return Invalid("invalid_end_time")
	}
	if in.EndTimeLocal <= in.StartTimeLocal {
		return Invalid("invalid_time_range")
	}
	if in.Attendees < 0 || in.Attendees > 5000 {
		return Invalid("invalid_attendees")
	}
	if !LenBetween(in.Details, 0, 5000) {
		return Invalid("invalid_details")
	}
	return nil
}

// Fields returns the persisted representation of a validated booking.
func (in *BookingInput) Fields() map[string]any {
	return map[string]any{
		"bookingType":    in.BookingType,
		"name":           in.Name,
		"email":          in.Email,
		"phone":          in.Phone,
		"organization":   in.Organization,
		"dateIso":        in.DateISO,
		"startTimeLocal": in.StartTimeLocal,
		"endTimeLocal":   in.EndTimeLocal,
		"attendees":      int(in.Attendees),
		"details":        in.Details,
	}
}

// Serve language preferences.
const (
	LanguageEnglish   = "en"
	LanguageTamil     = "ta"
	LanguageBilingual = "bilingual"
)

// ServeInput is a volunteer (serve) request. Catalog ids are checked by the service.
type ServeInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	OpportunityID string `json:"opportunityId"`
	TrainingID    string `json:"trainingId"`
	Language      string `json:"language"`
	Message       string `json:"message"`
}

// Validate normalizes the input in place and returns the first failing field.
func (in *ServeInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Phone = NormalizePhone(in.Phone)
	in.OpportunityID = strings.TrimSpace(in.OpportunityID)
	in.TrainingID = strings.TrimSpace(in.TrainingID)
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))
	in.Message = strings.TrimSpace(in.Message)

	if !LenBetween(in.Name, 1, 120) {
		return Invalid("invalid_name")
	}
	if !ValidEmail(in.Email) {
		return Invalid("invalid_email")
	}
	if in.Phone != "" && !ValidPhone(in.Phone) {
		return Invalid("invalid_phone")
	}
	if in.OpportunityID == "" && in.TrainingID == "" {
		return Invalid("invalid_selection")
	}
	switch in.Language {
	case LanguageEnglish, LanguageTamil, LanguageBilingual:
	default:
		return Invalid("invalid_language")
	}
	if !LenBetween(in.Message, 0, 2000) {
		return Invalid("invalid_message")
	}
	return nil
}

// Fields returns the persisted representation of a validated serve request.
func (in *ServeInput) Fields() map[string]any {
	return map[string]any{
		"name":          in.Name,
		"email":         in.Email,
		"phone":         in.Phone,
		"opportunityId": in.OpportunityID,
		"trainingId":    in.TrainingID,
		"language":      in.Language,
		"message":       in.Message,
	}
}

// NewsletterInput is a newsletter signup.
type NewsletterInput struct {
	Email    string `json:"email"`
	Language string `json:"language"`
}

// Validate normalizes the input in place and returns the first failing field.
func (in *NewsletterInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))
	if in.Language == "" {
		in.Language = LanguageEnglish
	}
	if !ValidEmail(in.Email) {
		return Invalid("invalid_email")
	}
	if in.Language != LanguageEnglish && in.Language != LanguageTamil {
		return Invalid("invalid_language")
	}
	return nil
}

// Fields returns the persisted representation of a validated signup.
func (in *NewsletterInput) Fields() map[string]any {
	return map[string]any{
		"email":    in.Email,
		"language": in.Language,
	}
}

// CommentInput is a blog comment awaiting moderation.
type CommentInput struct {
	PostSlug string `json:"postSlug"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Comment  string `json:"comment"`
}

// Validate normalizes the input in place and returns the first failing field.
func (in *CommentInput) Validate() error {
	in.PostSlug = strings.TrimSpace(in.PostSlug)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Comment = strings.TrimSpace(in.Comment)
	if !ValidSlug(in.PostSlug) {
		return Invalid("invalid_post")
	}
	if !LenBetween(in.Name, 1, 80) {
		return Invalid("invalid_name")
	}
	if !ValidEmail(in.Email) {
		return Invalid("invalid_email")
	}
	if !LenBetween(in.Comment, 1, 2000) {
		return Invalid("invalid_comment")
	}
	return nil
}

// Fields returns the persisted representation of a validated comment.
func (in *CommentInput) Fields() map[string]any {
	return map[string]any{
		"postSlug": in.PostSlug,
		"name":     in.Name,
		"email":    in.Email,
		"comment":  in.Comment,
	}
}

// SubmissionService validates form input and appends it to the submission store.
type SubmissionService interface {
	SubmitBooking(ctx context.Context, in BookingInput, meta RequestMeta) (*Submission, error)
	SubmitServe(ctx context.Context, in ServeInput, meta RequestMeta) (*Submission, error)
	SubscribeNewsletter(ctx context.Context, in NewsletterInput, meta RequestMeta) (*Submission, error)
	SubmitComment(ctx context.Context, in CommentInput, meta RequestMeta) (*Submission, error)
	List(ctx context.Context, kind string, params PaginationParams) ([]*Submission, int, error)
}
