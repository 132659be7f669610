package middleware

import (
	"log/slog"
	"net/http"

	h "praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/metrics"
	"praisetabernacle/internal/security"
)

// RequireGuard rejects cross-origin requests and requests without a valid CSRF token
// with 403 {"ok": false, "error": "forbidden"}. It runs before rate limiting and decoding.
func RequireGuard(guard *security.Guard, m *metrics.Metrics, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if err := guard.Check(r); err != nil {
				reason := security.Reason(err)
				m.GuardRejected(reason)
				logger.WarnContext(r.Context(), "request rejected by guard",
					"reason", reason,
					"path", r.URL.Path,
					"ip", h.ClientIP(r),
					"origin", r.Header.Get("Origin"),
				)
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "")
				return
			}
			next(w, r)
		}
	}
}
