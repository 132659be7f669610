package controllers

import (
	"log/slog"
	"net/http"

	"praisetabernacle/internal/delivery/http/helpers"
)

// writeError answers expected domain errors with their specific response and
// everything else with a logged 500 server_error.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if helpers.WriteDomainError(w, err) {
		return
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteServerError(w)
}
