package controllers

import (
	"log/slog"
	"net/http"

	"praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// EventsResponse lists upcoming events in start order.
type EventsResponse struct {
	OK     bool                            `json:"ok"`
	Events []*domain.EventWithAvailability `json:"events"`
}

// ListUpcoming godoc
// @Summary List upcoming events with seat availability
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventsResponse
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/events [get]
func (c *EventController) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListUpcoming(r.Context())
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventsResponse{OK: true, Events: events})
}
