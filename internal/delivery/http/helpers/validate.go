package helpers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"praisetabernacle/internal/domain"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 64 << 10

const maxUserAgentLen = 300

// Honeypot holds the hidden form fields that real visitors leave empty.
// Embed it in request DTOs.
type Honeypot struct {
	Honey   string `json:"honey,omitempty"`
	Website string `json:"website,omitempty"`
}

// Tripped reports whether a bot filled in either hidden field.
func (h Honeypot) Tripped() bool {
	return strings.TrimSpace(h.Honey) != "" || strings.TrimSpace(h.Website) != ""
}

// DecodeJSON decodes the request body into dest. Bodies over MaxBodyBytes, malformed JSON
// and trailing data are rejected with a 400 and DecodeJSON returns false.
// Callers should return immediately when DecodeJSON returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "request body too large")
			return false
		}
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "malformed JSON body")
		return false
	}
	if dec.More() {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "unexpected data after JSON body")
		return false
	}
	return true
}

// ClientIP returns the host part of RemoteAddr. Forwarding headers are ignored here;
// RemoteAddr only reflects them when the router was built with TrustProxyHeaders.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RequestMeta returns the client details stored with a submission.
func RequestMeta(r *http.Request) domain.RequestMeta {
	ua := strings.ToValidUTF8(r.UserAgent(), "")
	if len(ua) > maxUserAgentLen {
		ua = strings.ToValidUTF8(ua[:maxUserAgentLen], "")
	}
	return domain.RequestMeta{UserAgent: ua, IP: ClientIP(r)}
}
