package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praisetabernacle/internal/delivery/http/helpers"
	"praisetabernacle/internal/domain"
)

func intPtr(v int) *int { return &v }

const validRsvp = `{"eventSlug":"youth-camp-2027","name":"Anna","email":"anna@example.com","seats":2}`

func TestRsvpController_Submit(t *testing.T) {
	svc := &fakeRsvpService{result: &domain.RsvpResult{
		Rsvp:      &domain.RsvpRecord{ID: "r1", EventSlug: "youth-camp-2027", Name: "Anna", Email: "anna@example.com", Seats: 2},
		Kind:      domain.UpsertCreated,
		Remaining: intPtr(58),
		Email:     domain.EmailDelivery{ConfirmationSent: true, NotifySent: false},
	}}
	ctrl := NewRsvpController(testLogger, svc)
	rr := httptest.NewRecorder()

	ctrl.Submit(rr, jsonRequest(t, http.MethodPost, "/api/rsvp", validRsvp))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, "created", resp["kind"])
	assert.Equal(t, float64(58), resp["remaining"])
	assert.Equal(t, map[string]any{"confirmationSent": true, "notifySent": false}, resp["email"])
}

func TestRsvpController_SubmitErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"over capacity", validRsvp, &domain.CapacityError{Remaining: 1}, http.StatusConflict, `{"ok":false,"error":"over_capacity","remaining":1}`},
		{"past event", validRsvp, domain.ErrEventPast, http.StatusBadRequest, `{"ok":false,"error":"event_past"}`},
		{"unknown event", validRsvp, domain.Invalid("invalid_event"), http.StatusBadRequest, `{"ok":false,"error":"invalid_event"}`},
		{"storage failure", validRsvp, errors.New("disk full"), http.StatusInternalServerError, `{"ok":false,"error":"server_error"}`},
		{"honeypot", `{"eventSlug":"x","honey":"bot"}`, errors.New("must not be called"), http.StatusOK, `{"ok":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRsvpService{err: tt.err}
			ctrl := NewRsvpController(testLogger, svc)
			rr := httptest.NewRecorder()

			ctrl.Submit(rr, jsonRequest(t, http.MethodPost, "/api/rsvp", tt.body))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			if tt.name == "honeypot" {
				assert.Equal(t, 0, svc.calls)
			}
		})
	}
}

func TestRsvpController_Cancel(t *testing.T) {
	svc := &fakeRsvpService{removed: 1}
	ctrl := NewRsvpController(testLogger, svc)
	rr := httptest.NewRecorder()

	ctrl.Cancel(rr, jsonRequest(t, http.MethodDelete, "/api/rsvp", `{"eventSlug":"youth-camp-2027","email":"anna@example.com"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"removed":1}`, rr.Body.String())
	assert.Equal(t, "youth-camp-2027", svc.lastSlug)
	assert.Equal(t, "anna@example.com", svc.lastEmail)
}

func TestRsvpController_Availability(t *testing.T) {
	t.Run("capped event", func(t *testing.T) {
		svc := &fakeRsvpService{availability: &domain.SeatAvailability{
			EventSlug: "youth-camp-2027", Capacity: intPtr(60), Reserved: 12, Remaining: intPtr(48),
		}}
		rr := httptest.NewRecorder()
		NewRsvpController(testLogger, svc).Availability(rr, httptest.NewRequest(http.MethodGet, "/api/rsvp?event=youth-camp-2027", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"ok":true,"eventSlug":"youth-camp-2027","capacity":60,"reserved":12,"remaining":48}`, rr.Body.String())
	})

	t.Run("missing slug", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewRsvpController(testLogger, &fakeRsvpService{}).Availability(rr, httptest.NewRequest(http.MethodGet, "/api/rsvp", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown event", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewRsvpController(testLogger, &fakeRsvpService{err: domain.ErrNotFound}).Availability(rr, httptest.NewRequest(http.MethodGet, "/api/rsvp?event=nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		var body helpers.APIError
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, helpers.ErrCodeNotFound, body.Error)
	})
}
