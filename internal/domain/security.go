package domain

import (
	"context"
	"time"
)

// CSRFTokenManager issues and verifies anti-CSRF tokens bound to a cookie nonce.
type CSRFTokenManager interface {
	// Issue returns a signed token and the nonce that must be stored in the visitor's cookie.
	Issue() (token, nonce string, err error)
	// Verify checks the token signature and expiry and that it was issued for nonce.
	Verify(token, nonce string) error
}

// AdminAuthenticator checks moderator credentials.
type AdminAuthenticator interface {
	Authenticate(username, password string) bool
}

// RateLimitResult is the outcome of one rate limit check.
type RateLimitResult struct {
	Allowed           bool
	RetryAfterSeconds int
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, max int, window time.Duration) (RateLimitResult, error)
}
