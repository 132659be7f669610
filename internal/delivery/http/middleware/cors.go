package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"praisetabernacle/internal/security"
)

const corsMaxAge = 86400

// CORS allows the site's own origins to call the API with cookies and the CSRF header.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", security.HeaderName},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
}
