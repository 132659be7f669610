package middleware

import (
	"log/slog"
	"net/http"

	h "praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/domain"
)

const adminRealm = `Basic realm="tabernacle-admin", charset="UTF-8"`

// RequireAdmin returns a wrapper that checks HTTP basic credentials against auth.
// Missing or wrong credentials get a 401 with a WWW-Authenticate challenge and next is not called.
func RequireAdmin(auth domain.AdminAuthenticator, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", adminRealm)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing credentials")
				return
			}
			if !auth.Authenticate(username, password) {
				logger.WarnContext(r.Context(), "admin authentication failed", "ip", h.ClientIP(r), "path", r.URL.Path)
				w.Header().Set("WWW-Authenticate", adminRealm)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
				return
			}
			next(w, r)
		}
	}
}
