package controllers

import (
	"log/slog"
	"net/http"

	"praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/domain"
)

type PrayerWallController struct {
	Logger  *slog.Logger
	Service domain.PrayerWallService
}

func NewPrayerWallController(logger *slog.Logger, svc domain.PrayerWallService) *PrayerWallController {
	return &PrayerWallController{Logger: logger, Service: svc}
}

// PrayerPostsResponse lists prayer wall posts, newest first.
type PrayerPostsResponse struct {
	OK    bool                     `json:"ok"`
	Posts []*domain.PrayerWallPost `json:"posts"`
}

// List godoc
// @Summary List approved prayer wall posts
// @Tags prayer-wall
// @Produce json
// @Success 200 {object} controllers.PrayerPostsResponse
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/prayer-wall [get]
func (c *PrayerWallController) List(w http.ResponseWriter, r *http.Request) {
	posts, err := c.Service.ListApproved(r.Context())
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	if posts == nil {
		posts = []*domain.PrayerWallPost{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PrayerPostsResponse{OK: true, Posts: posts})
}

// PrayerPostRequest is the request body for POST /api/prayer-wall.
type PrayerPostRequest struct {
	helpers.Honeypot
	domain.PrayerPostInput
}

// PrayerPostResponse returns the stored post. It stays hidden until a moderator approves it.
type PrayerPostResponse struct {
	OK   bool                   `json:"ok"`
	Post *domain.PrayerWallPost `json:"post,omitempty"`
}

// Create godoc
// @Summary Submit a prayer request or testimony
// @Description The post is stored unapproved and appears on the wall after moderation.
// @Tags prayer-wall
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token from GET /api/csrf"
// @Param body body controllers.PrayerPostRequest true "Post"
// @Success 200 {object} controllers.PrayerPostResponse
// @Failure 400 {object} helpers.APIError "error: invalid_name | invalid_request | invalid_kind"
// @Failure 403 {object} helpers.APIError "error: forbidden"
// @Failure 429 {object} helpers.APIError "error: rate_limited"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/prayer-wall [post]
func (c *PrayerWallController) Create(w http.ResponseWriter, r *http.Request) {
	var req PrayerPostRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Tripped() {
		c.Logger.InfoContext(r.Context(), "honeypot tripped", "path", r.URL.Path, "ip", helpers.ClientIP(r))
		helpers.WriteOK(w)
		return
	}
	post, err := c.Service.AddPost(r.Context(), req.PrayerPostInput)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PrayerPostResponse{OK: true, Post: post})
}

// PrayResponse carries the post's new prayed count.
type PrayResponse struct {
	OK          bool `json:"ok"`
	PrayedCount int  `json:"prayedCount"`
}

// Pray godoc
// @Summary Record that a visitor prayed for a post
// @Tags prayer-wall
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token from GET /api/csrf"
// @Param id path string true "Post ID"
// @Success 200 {object} controllers.PrayResponse
// @Failure 403 {object} helpers.APIError "error: forbidden"
// @Failure 404 {object} helpers.APIError "error: not_found"
// @Failure 429 {object} helpers.APIError "error: rate_limited"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/prayer-wall/{id}/pray [post]
func (c *PrayerWallController) Pray(w http.ResponseWriter, r *http.Request) {
	count, err := c.Service.Pray(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PrayResponse{OK: true, PrayedCount: count})
}
