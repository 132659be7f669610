package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	h "praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/metrics"
)

// RateRule is the budget for one endpoint. Name prefixes the limiter key, e.g. "rsvp:<ip>".
type RateRule struct {
	Name   string
	Max    int
	Window time.Duration
}

// RateLimit returns a wrapper that answers 429 {"ok": false, "error": "rate_limited"} with a
// Retry-After header once the caller's IP has used up rule.Max requests in rule.Window.
// A limiter error lets the request through.
func RateLimit(limiter domain.RateLimiter, rule RateRule, m *metrics.Metrics, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := rule.Name + ":" + h.ClientIP(r)
			res, err := limiter.Allow(r.Context(), key, rule.Max, rule.Window)
			if err != nil {
				logger.WarnContext(r.Context(), "rate limiter unavailable, allowing request", "key", key, "err", err)
				next(w, r)
				return
			}
			if !res.Allowed {
				m.RateLimited(rule.Name)
				logger.WarnContext(r.Context(), "rate limited", "key", key, "retry_after", res.RetryAfterSeconds)
				w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfterSeconds))
				h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeRateLimited, "")
				return
			}
			next(w, r)
		}
	}
}
