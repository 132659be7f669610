package http

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"praisetabernacle/internal/delivery/http/controllers"
	"praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/delivery/http/middleware"
	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/metrics"
	"praisetabernacle/internal/security"
)

// Per-endpoint budgets, keyed by "<name>:<ip>".
var (
	bookingRule    = middleware.RateRule{Name: "booking", Max: 5, Window: 10 * time.Minute}
	serveRule      = middleware.RateRule{Name: "serve", Max: 5, Window: 10 * time.Minute}
	newsletterRule = middleware.RateRule{Name: "newsletter", Max: 5, Window: 10 * time.Minute}
	commentRule    = middleware.RateRule{Name: "comment", Max: 5, Window: 10 * time.Minute}
	rsvpRule       = middleware.RateRule{Name: "rsvp", Max: 10, Window: 10 * time.Minute}
	prayerRule     = middleware.RateRule{Name: "prayer", Max: 5, Window: 10 * time.Minute}
	prayRule       = middleware.RateRule{Name: "pray", Max: 60, Window: 10 * time.Minute}
)

// RouterDeps holds everything the router wires together.
type RouterDeps struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Origins     []string
	Guard       *security.Guard
	CSRF        *security.CSRF
	Limiter     domain.RateLimiter
	Admin       domain.AdminAuthenticator // nil disables the admin routes
	Submissions domain.SubmissionService
	Rsvps       domain.RsvpService
	Prayer      domain.PrayerWallService
	Events      domain.EventService
	Promises    domain.PromiseService

	// TrustProxyHeaders makes X-Forwarded-For / X-Real-IP replace RemoteAddr.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

// NewRouter initializes the HTTP handler with all application routes and the middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// guarded runs the origin and CSRF checks, then the endpoint's rate limit, then h.
	guarded := func(rule middleware.RateRule, h http.HandlerFunc) http.HandlerFunc {
		limited := middleware.RateLimit(d.Limiter, rule, d.Metrics, d.Logger)(h)
		return middleware.RequireGuard(d.Guard, d.Metrics, d.Logger)(limited)
	}

	csrfCtrl := controllers.NewCSRFController(d.Logger, d.CSRF)
	submissionCtrl := controllers.NewSubmissionController(d.Logger, d.Submissions)
	rsvpCtrl := controllers.NewRsvpController(d.Logger, d.Rsvps)
	prayerCtrl := controllers.NewPrayerWallController(d.Logger, d.Prayer)
	eventCtrl := controllers.NewEventController(d.Logger, d.Events)
	promiseCtrl := controllers.NewPromiseController(d.Logger, d.Promises)

	// Public API
	mux.HandleFunc("GET /api/csrf", csrfCtrl.Issue)
	mux.HandleFunc("POST /api/bookings", guarded(bookingRule, submissionCtrl.Booking))
	mux.HandleFunc("POST /api/serve", guarded(serveRule, submissionCtrl.Serve))
	mux.HandleFunc("POST /api/newsletter", guarded(newsletterRule, submissionCtrl.Newsletter))
	mux.HandleFunc("POST /api/comments", guarded(commentRule, submissionCtrl.Comment))

	mux.HandleFunc("GET /api/events", eventCtrl.ListUpcoming)
	mux.HandleFunc("GET /api/rsvp", rsvpCtrl.Availability)
	mux.HandleFunc("POST /api/rsvp", guarded(rsvpRule, rsvpCtrl.Submit))
	mux.HandleFunc("DELETE /api/rsvp", guarded(rsvpRule, rsvpCtrl.Cancel))

	mux.HandleFunc("GET /api/prayer-wall", prayerCtrl.List)
	mux.HandleFunc("POST /api/prayer-wall", guarded(prayerRule, prayerCtrl.Create))
	mux.HandleFunc("POST /api/prayer-wall/{id}/pray", guarded(prayRule, prayerCtrl.Pray))

	mux.HandleFunc("GET /api/daily-promise", promiseCtrl.Daily)

	// Admin
	if d.Admin != nil {
		adminCtrl := controllers.NewAdminController(d.Logger, d.Prayer, d.Submissions, d.Rsvps)
		requireAdmin := middleware.RequireAdmin(d.Admin, d.Logger)
		mux.HandleFunc("GET /admin/prayer-wall", requireAdmin(adminCtrl.ListPrayerPosts))
		mux.HandleFunc("POST /admin/prayer-wall/{id}/approve", requireAdmin(adminCtrl.ApprovePost))
		mux.HandleFunc("DELETE /admin/prayer-wall/{id}", requireAdmin(adminCtrl.DeletePost))
		mux.HandleFunc("GET /admin/submissions/{kind}", requireAdmin(adminCtrl.ListSubmissions))
		mux.HandleFunc("GET /admin/events/{slug}/rsvps", requireAdmin(adminCtrl.ListEventRsvps))
	}

	// Ops
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteOK(w)
	})
	mux.Handle("GET /metrics", d.Metrics.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.CORS(d.Origins)(h)
	h = middleware.LoggingMiddleware(d.Logger, d.Metrics, h)
	h = chimw.Recoverer(h)
	if d.TrustProxyHeaders {
		h = chimw.RealIP(h)
	}
	h = chimw.RequestID(h)
	return h
}
