package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"praisetabernacle/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "rate_limited"
	ErrCodeOverCapacity = "over_capacity"
	ErrCodeEventPast    = "event_past"
	ErrCodeServerError  = "server_error"
)

// APIError is the failure envelope shared by every endpoint.
// swagger:model APIError
type APIError struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// OKResponse is the success envelope for endpoints with no payload.
// swagger:model OKResponse
type OKResponse struct {
	OK bool `json:"ok"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONSuccess writes a 2xx payload. The payload is expected to carry "ok": true.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	WriteJSON(w, statusCode, data)
}

// WriteOK writes 200 {"ok": true}.
func WriteOK(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

// WriteJSONError writes {"ok": false, "error": code, "message": message}.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, APIError{OK: false, Error: code, Message: message})
}

// CapacityErrorResponse is returned with 409 when an RSVP asks for more seats than are left.
// swagger:model CapacityErrorResponse
type CapacityErrorResponse struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error"`
	Remaining int    `json:"remaining"`
}

// WriteDomainError maps expected domain errors to their response. It returns false
// for anything else so the caller can log it and answer with WriteServerError.
func WriteDomainError(w http.ResponseWriter, err error) bool {
	var verr *domain.ValidationError
	var capErr *domain.CapacityError
	switch {
	case errors.As(err, &verr):
		WriteJSONError(w, http.StatusBadRequest, verr.Code, "")
	case errors.As(err, &capErr):
		WriteJSON(w, http.StatusConflict, CapacityErrorResponse{Error: ErrCodeOverCapacity, Remaining: capErr.Remaining})
	case errors.Is(err, domain.ErrEventPast):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeEventPast, "")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "")
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "")
	default:
		return false
	}
	return true
}

// WriteServerError writes the generic 500 body. Internal details never reach the client.
func WriteServerError(w http.ResponseWriter) {
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeServerError, "")
}
