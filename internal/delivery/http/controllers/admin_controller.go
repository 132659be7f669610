package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/domain"
)

// AdminController serves the moderation and export endpoints behind basic auth.
type AdminController struct {
	Logger      *slog.Logger
	Prayer      domain.PrayerWallService
	Submissions domain.SubmissionService
	Rsvps       domain.RsvpService
}

func NewAdminController(logger *slog.Logger, prayer domain.PrayerWallService, submissions domain.SubmissionService, rsvps domain.RsvpService) *AdminController {
	return &AdminController{Logger: logger, Prayer: prayer, Submissions: submissions, Rsvps: rsvps}
}

// ListPrayerPosts godoc
// @Summary List every prayer wall post, including unapproved ones
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Success 200 {object} controllers.PrayerPostsResponse
// @Failure 401 {object} helpers.APIError "error: unauthorized"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /admin/prayer-wall [get]
func (c *AdminController) ListPrayerPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := c.Prayer.ListAll(r.Context())
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	if posts == nil {
		posts = []*domain.PrayerWallPost{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PrayerPostsResponse{OK: true, Posts: posts})
}

// ApprovePost godoc
// @Summary Approve a prayer wall post
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Param id path string true "Post ID"
// @Success 200 {object} helpers.OKResponse
// @Failure 401 {object} helpers.APIError "error: unauthorized"
// @Failure 404 {object} helpers.APIError "error: not_found"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /admin/prayer-wall/{id}/approve [post]
func (c *AdminController) ApprovePost(w http.ResponseWriter, r *http.Request) {
	c.moderate(w, r, c.Prayer.Approve, "prayer post approved")
}

// DeletePost godoc
// @Summary Delete a prayer wall post
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Param id path string true "Post ID"
// @Success 200 {object} helpers.OKResponse
// @Failure 401 {object} helpers.APIError "error: unauthorized"
// @Failure 404 {object} helpers.APIError "error: not_found"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /admin/prayer-wall/{id} [delete]
func (c *AdminController) DeletePost(w http.ResponseWriter, r *http.Request) {
	c.moderate(w, r, c.Prayer.Delete, "prayer post deleted")
}

func (c *AdminController) moderate(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id string) (bool, error), msg string) {
	id := r.PathValue("id")
	found, err := action(r.Context(), id)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	if !found {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "")
		return
	}
	c.Logger.InfoContext(r.Context(), msg, "id", id)
	helpers.WriteOK(w)
}

// SubmissionsResponse is one page of a submission collection, oldest first.
type SubmissionsResponse struct {
	OK          bool                   `json:"ok"`
	Submissions []*domain.Submission   `json:"submissions"`
	Pagination  helpers.PaginationMeta `json:"pagination"`
}

// ListSubmissions godoc
// @Summary Page through stored submissions of one kind
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Param kind path string true "booking, serve, newsletter or comment"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.SubmissionsResponse
// @Failure 401 {object} helpers.APIError "error: unauthorized"
// @Failure 404 {object} helpers.APIError "error: not_found"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /admin/submissions/{kind} [get]
func (c *AdminController) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	subs, total, err := c.Submissions.List(r.Context(), r.PathValue("kind"), params)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	if subs == nil {
		subs = []*domain.Submission{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SubmissionsResponse{
		OK:          true,
		Submissions: subs,
		Pagination:  helpers.NewPaginationMeta(params, total),
	})
}

// EventRsvpsResponse lists every RSVP for one event.
type EventRsvpsResponse struct {
	OK    bool                 `json:"ok"`
	Rsvps []*domain.RsvpRecord `json:"rsvps"`
}

// ListEventRsvps godoc
// @Summary List RSVPs for an event
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventRsvpsResponse
// @Failure 401 {object} helpers.APIError "error: unauthorized"
// @Failure 404 {object} helpers.APIError "error: not_found"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /admin/events/{slug}/rsvps [get]
func (c *AdminController) ListEventRsvps(w http.ResponseWriter, r *http.Request) {
	records, err := c.Rsvps.ListForEvent(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	if records == nil {
		records = []*domain.RsvpRecord{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventRsvpsResponse{OK: true, Rsvps: records})
}
