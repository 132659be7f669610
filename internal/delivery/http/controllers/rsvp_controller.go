package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/domain"
)

type RsvpController struct {
	Logger  *slog.Logger
	Service domain.RsvpService
}

func NewRsvpController(logger *slog.Logger, svc domain.RsvpService) *RsvpController {
	return &RsvpController{Logger: logger, Service: svc}
}

// RsvpRequest is the request body for POST /api/rsvp.
type RsvpRequest struct {
	helpers.Honeypot
	domain.RsvpInput
}

// RsvpResponse is the success body for POST /api/rsvp. Remaining is null for events without a capacity.
type RsvpResponse struct {
	OK        bool                 `json:"ok"`
	Kind      domain.UpsertKind    `json:"kind"`
	Rsvp      *domain.RsvpRecord   `json:"rsvp"`
	Remaining *int                 `json:"remaining"`
	Email     domain.EmailDelivery `json:"email"`
}

// Submit godoc
// @Summary Create or update an RSVP
// @Description Upserts the RSVP for (eventSlug, email). A second RSVP with the same email replaces the first. Email delivery failures are reported in the email flags and never fail the request.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token from GET /api/csrf"
// @Param body body controllers.RsvpRequest true "RSVP"
// @Success 200 {object} controllers.RsvpResponse
// @Failure 400 {object} helpers.APIError "error: invalid_<field> | event_past"
// @Failure 403 {object} helpers.APIError "error: forbidden"
// @Failure 409 {object} helpers.CapacityErrorResponse "error: over_capacity"
// @Failure 429 {object} helpers.APIError "error: rate_limited"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/rsvp [post]
func (c *RsvpController) Submit(w http.ResponseWriter, r *http.Request) {
	var req RsvpRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Tripped() {
		c.Logger.InfoContext(r.Context(), "honeypot tripped", "path", r.URL.Path, "ip", helpers.ClientIP(r))
		helpers.WriteOK(w)
		return
	}
	res, err := c.Service.Submit(r.Context(), req.RsvpInput)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RsvpResponse{
		OK:        true,
		Kind:      res.Kind,
		Rsvp:      res.Rsvp,
		Remaining: res.Remaining,
		Email:     res.Email,
	})
}

// CancelRsvpRequest is the request body for DELETE /api/rsvp.
type CancelRsvpRequest struct {
	helpers.Honeypot
	EventSlug string `json:"eventSlug"`
	Email     string `json:"email"`
}

// CancelRsvpResponse reports how many reservations were removed (0 or 1).
type CancelRsvpResponse struct {
	OK      bool `json:"ok"`
	Removed int  `json:"removed"`
}

// Cancel godoc
// @Summary Cancel an RSVP
// @Tags rsvp
// @Accept json
// @Produce json
// @Param X-CSRF-Token header string true "CSRF token from GET /api/csrf"
// @Param body body controllers.CancelRsvpRequest true "Event and email"
// @Success 200 {object} controllers.CancelRsvpResponse
// @Failure 400 {object} helpers.APIError "error: invalid_event | invalid_email"
// @Failure 403 {object} helpers.APIError "error: forbidden"
// @Failure 429 {object} helpers.APIError "error: rate_limited"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/rsvp [delete]
func (c *RsvpController) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRsvpRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Tripped() {
		helpers.WriteJSONSuccess(w, http.StatusOK, CancelRsvpResponse{OK: true})
		return
	}
	removed, err := c.Service.Cancel(r.Context(), req.EventSlug, req.Email)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CancelRsvpResponse{OK: true, Removed: removed})
}

// AvailabilityResponse wraps the seat counts of one event.
type AvailabilityResponse struct {
	OK bool `json:"ok"`
	*domain.SeatAvailability
}

// Availability godoc
// @Summary Seat availability for an event
// @Tags rsvp
// @Produce json
// @Param event query string true "Event slug"
// @Success 200 {object} controllers.AvailabilityResponse
// @Failure 400 {object} helpers.APIError "error: invalid_event"
// @Failure 404 {object} helpers.APIError "error: not_found"
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/rsvp [get]
func (c *RsvpController) Availability(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.URL.Query().Get("event"))
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "invalid_event", "")
		return
	}
	av, err := c.Service.Availability(r.Context(), slug)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AvailabilityResponse{OK: true, SeatAvailability: av})
}
