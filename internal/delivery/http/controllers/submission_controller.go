package controllers

import (
	"log/slog"
	"net/http"

	"praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/domain"
)

type SubmissionController struct {
	Logger  *slog.Logger
	Service domain.SubmissionService
}

func NewSubmissionController(logger *slog.Logger, svc domain.SubmissionService) *SubmissionController {
	return &SubmissionController{Logger: logger, Service: svc}
}

// SubmissionResponse is the success body for every form submission.
type SubmissionResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id,omitempty"`
}

// BookingRequest is the request body for POST /api/bookings.
type BookingRequest struct {
	helpers.Honeypot
	domain.BookingInput
}

// ServeRequest is the request body for POST /api/serve.
type ServeRequest struct {
	helpers.Honeypot
	domain.ServeInput
}

// NewsletterRequest is the request body for POST /api/newsletter.
type NewsletterRequest struct {
	helpers.Honeypot
	domain.NewsletterInput
}

// CommentRequest is the request body for POST /api/comments.
type CommentRequest struct {
	helpers.Honeypot
	domain.CommentInput
}

// honeypotted is implemented by every request body that embeds helpers.Honeypot.
type honeypotted interface {
	Tripped() bool
}

// handle decodes req, short-circuits bot submissions and otherwise stores the submission with submit.
func (c *SubmissionController) handle(w http.ResponseWriter, r *http.Request, req honeypotted, submit func(meta domain.RequestMeta) (*domain.Submission, error)) {
	if !helpers.DecodeJSON(w, r, req) {
		return
	}
	if req.Tripped() {
		c.Logger.InfoContext(r.Context(), "honeypot tripped", "path", r.URL.Path, "ip", helpers.ClientIP(r))
		helpers.WriteOK(w)
		return
	}
	sub, err := submit(helpers.RequestMeta(r))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SubmissionResponse{OK: true, ID: sub.ID})
}

// Booking godoc
// @Summary Request a building or room booking
// @Tags submissions
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token from GET /api/csrf"
// @Param body body controllers.BookingRequest true "Booking"
// @Success 200 {object} controllers.SubmissionResponse
// @Failure 400 {object} helpers.APIError "error: invalid_<field>"
// @Failure 403 {object} helpers.APIError "error: forbidden"
// @Failure 429 {object} helpers.APIError "error: rate_limited"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/bookings [post]
func (c *SubmissionController) Booking(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	c.handle(w, r, &req, func(meta domain.RequestMeta) (*domain.Submission, error) {
		return c.Service.SubmitBooking(r.Context(), req.BookingInput, meta)
	})
}

// Serve godoc
// @Summary Volunteer for a serving opportunity or training
// @Tags submissions
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token from GET /api/csrf"
// @Param body body controllers.ServeRequest true "Serve request"
// @Success 200 {object} controllers.SubmissionResponse
// @Failure 400 {object} helpers.APIError "error: invalid_<field>"
// @Failure 403 {object} helpers.APIError "error: forbidden"
// @Failure 429 {object} helpers.APIError "error: rate_limited"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/serve [post]
func (c *SubmissionController) Serve(w http.ResponseWriter, r *http.Request) {
	var req ServeRequest
	c.handle(w, r, &req, func(meta domain.RequestMeta) (*domain.Submission, error) {
		return c.Service.SubmitServe(r.Context(), req.ServeInput, meta)
	})
}

// Newsletter godoc
// @Summary Subscribe to the newsletter
// @Tags submissions
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token from GET /api/csrf"
// @Param body body controllers.NewsletterRequest true "Signup"
// @Success 200 {object} controllers.SubmissionResponse
// @Failure 400 {object} helpers.APIError "error: invalid_email | invalid_language"
// @Failure 403 {object} helpers.APIError "error: forbidden"
// @Failure 429 {object} helpers.APIError "error: rate_limited"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/newsletter [post]
func (c *SubmissionController) Newsletter(w http.ResponseWriter, r *http.Request) {
	var req NewsletterRequest
	c.handle(w, r, &req, func(meta domain.RequestMeta) (*domain.Submission, error) {
		return c.Service.SubscribeNewsletter(r.Context(), req.NewsletterInput, meta)
	})
}

// Comment godoc
// @Summary Leave a blog comment for moderation
// @Tags submissions
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token from GET /api/csrf"
// @Param body body controllers.CommentRequest true "Comment"
// @Success 200 {object} controllers.SubmissionResponse
// @Failure 400 {object} helpers.APIError "error: invalid_<field>"
// @Failure 403 {object} helpers.APIError "error: forbidden"
// @Failure 429 {object} helpers.APIError "error: rate_limited"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/comments [post]
func (c *SubmissionController) Comment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	c.handle(w, r, &req, func(meta domain.RequestMeta) (*domain.Submission, error) {
		return c.Service.SubmitComment(r.Context(), req.CommentInput, meta)
	})
}
