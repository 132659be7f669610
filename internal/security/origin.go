// Package security implements the request guard run before every mutating
// endpoint: a same-origin check followed by a CSRF token check.
package security

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"praisetabernacle/internal/domain"
)

var (
	// ErrOriginNotAllowed means the Origin or Referer named a site outside the allow-list.
	ErrOriginNotAllowed = fmt.Errorf("%w: origin not allowed", domain.ErrForbidden)
	// ErrCSRFInvalid means the CSRF header or cookie was missing or did not verify.
	ErrCSRFInvalid = fmt.Errorf("%w: invalid csrf token", domain.ErrForbidden)
)

// OriginPolicy checks that a request was sent by a page on one of the site's own origins.
type OriginPolicy struct {
	allowed map[string]struct{}
}

// NewOriginPolicy builds a policy from origins such as "https://praisetabernacle.lk".
func NewOriginPolicy(origins []string) *OriginPolicy {
	p := &OriginPolicy{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		if n, ok := normalizeOrigin(o); ok {
			p.allowed[n] = struct{}{}
		}
	}
	return p
}

// Check compares the Origin header, or the origin of Referer when Origin is absent,
// against the allow-list. A request carrying neither header passes: browsers send
// at least one on cross-site form posts, so this only stops browser-based forgery.
func (p *OriginPolicy) Check(r *http.Request) error {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		ref := strings.TrimSpace(r.Header.Get("Referer"))
		if ref == "" {
			return nil
		}
		origin = ref
	}
	n, ok := normalizeOrigin(origin)
	if !ok {
		return ErrOriginNotAllowed
	}
	if _, allowed := p.allowed[n]; !allowed {
		return ErrOriginNotAllowed
	}
	return nil
}

// Allowed reports whether origin is on the allow-list.
func (p *OriginPolicy) Allowed(origin string) bool {
	n, ok := normalizeOrigin(origin)
	if !ok {
		return false
	}
	_, allowed := p.allowed[n]
	return allowed
}

// normalizeOrigin reduces a URL or origin to lowercase scheme://host[:port].
// "null" and anything without scheme and host is rejected.
func normalizeOrigin(raw string) (string, bool) {
	if raw == "" || raw == "null" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	host := strings.ToLower(u.Host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	return scheme + "://" + host, true
}

// Reason maps a guard error to the label used in logs and metrics.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrOriginNotAllowed):
		return "origin"
	case errors.Is(err, ErrCSRFInvalid):
		return "csrf"
	default:
		return "unknown"
	}
}
