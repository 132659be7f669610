package security

import "net/http"

// Guard runs the origin check and then the CSRF check.
type Guard struct {
	Origin *OriginPolicy
	CSRF   *CSRF
}

// NewGuard returns a Guard combining both checks.
func NewGuard(origin *OriginPolicy, csrf *CSRF) *Guard {
	return &Guard{Origin: origin, CSRF: csrf}
}

// Check returns the first failing check's error, or nil.
func (g *Guard) Check(r *http.Request) error {
	if err := g.Origin.Check(r); err != nil {
		return err
	}
	return g.CSRF.Check(r)
}
