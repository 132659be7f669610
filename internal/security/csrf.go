package security

import (
	"fmt"
	"net/http"
	"time"

	"praisetabernacle/internal/domain"
)

const (
	// CookieName holds the nonce the CSRF token is bound to.
	CookieName = "pt_csrf"
	// HeaderName carries the CSRF token on mutating requests.
	HeaderName = "X-CSRF-Token"
)

// CSRF issues tokens bound to a cookie nonce and checks them on mutating requests.
type CSRF struct {
	tokens domain.CSRFTokenManager
	ttl    time.Duration
	secure bool
}

// NewCSRF returns a CSRF checker. secure marks the nonce cookie Secure, which production requires.
func NewCSRF(tokens domain.CSRFTokenManager, ttl time.Duration, secure bool) *CSRF {
	return &CSRF{tokens: tokens, ttl: ttl, secure: secure}
}

// Issue sets a fresh nonce cookie on w and returns the token the page must echo in HeaderName.
func (c *CSRF) Issue(w http.ResponseWriter) (string, error) {
	token, nonce, err := c.tokens.Issue()
	if err != nil {
		return "", fmt.Errorf("issue csrf token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    nonce,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// Check verifies the header token against the cookie nonce.
func (c *CSRF) Check(r *http.Request) error {
	token := r.Header.Get(HeaderName)
	cookie, err := r.Cookie(CookieName)
	if token == "" || err != nil || cookie.Value == "" {
		return ErrCSRFInvalid
	}
	if err := c.tokens.Verify(token, cookie.Value); err != nil {
		return fmt.Errorf("%w: %v", ErrCSRFInvalid, err)
	}
	return nil
}
