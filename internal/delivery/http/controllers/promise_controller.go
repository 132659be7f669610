package controllers

import (
	"log/slog"
	"net/http"

	"praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/domain"
)

type PromiseController struct {
	Logger  *slog.Logger
	Service domain.PromiseService
}

func NewPromiseController(logger *slog.Logger, svc domain.PromiseService) *PromiseController {
	return &PromiseController{Logger: logger, Service: svc}
}

// DailyPromiseResponse is the promise selected for one calendar date.
type DailyPromiseResponse struct {
	OK bool `json:"ok"`
	domain.DailyPromiseResult
}

// Daily godoc
// @Summary Daily promise
// @Description Returns the promise for the given date in the site time zone, or for today when date is omitted.
// @Tags promises
// @Produce json
// @Param date query string false "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} controllers.DailyPromiseResponse
// @Failure 400 {object} helpers.APIError "error: invalid_date"
// @Router /api/daily-promise [get]
func (c *PromiseController) Daily(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.ForDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DailyPromiseResponse{OK: true, DailyPromiseResult: res})
}
