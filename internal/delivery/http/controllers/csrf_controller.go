package controllers

import (
	"log/slog"
	"net/http"

	"praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/security"
)

type CSRFController struct {
	Logger *slog.Logger
	CSRF   *security.CSRF
}

func NewCSRFController(logger *slog.Logger, csrf *security.CSRF) *CSRFController {
	return &CSRFController{Logger: logger, CSRF: csrf}
}

// CSRFTokenResponse carries the token forms must echo in the X-CSRF-Token header.
type CSRFTokenResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}

// Issue godoc
// @Summary Issue a CSRF token
// @Description Sets the pt_csrf nonce cookie and returns a signed token bound to it. Send the token back in the X-CSRF-Token header on every mutating request.
// @Tags security
// @Produce json
// @Success 200 {object} controllers.CSRFTokenResponse
// @Failure 500 {object} helpers.APIError "error: server_error"
// @Router /api/csrf [get]
func (c *CSRFController) Issue(w http.ResponseWriter, r *http.Request) {
	token, err := c.CSRF.Issue(w)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CSRFTokenResponse{OK: true, Token: token})
}
