package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praisetabernacle/internal/delivery/http/helpers"
)

const validBooking = `{
	"bookingType": "room",
	"name": "Youth Team",
	"email": "youth@example.com",
	"phone": "+94 77 123 4567",
	"dateIso": "2026-11-14",
	"startTimeLocal": "09:00",
	"endTimeLocal": "12:30",
	"attendees": 25,
	"details": "Planning day"
}`

func TestSubmissionController_Booking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantError  string
		wantStored int
	}{
		{"valid booking", validBooking, nil, http.StatusOK, "", 1},
		{"invalid email", `{"bookingType":"room","name":"A","email":"nope","dateIso":"2026-11-14","startTimeLocal":"09:00","endTimeLocal":"10:00"}`, nil, http.StatusBadRequest, "invalid_email", 0},
		{"invalid booking type", `{"bookingType":"car","name":"A"}`, nil, http.StatusBadRequest, "invalid_booking_type", 0},
		{"attendees as string", strings.Replace(validBooking, `"attendees": 25`, `"attendees": "40"`, 1), nil, http.StatusOK, "", 1},
		{"attendees not a number", strings.Replace(validBooking, `"attendees": 25`, `"attendees": "forty"`, 1), nil, http.StatusBadRequest, "invalid_attendees", 0},
		{"malformed JSON", `{"bookingType":`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, 0},
		{"honeypot", `{"honey":"buy now","name":""}`, nil, http.StatusOK, "", 0},
		{"storage failure", validBooking, errors.New("open /data/submissions/booking.json: permission denied"), http.StatusInternalServerError, helpers.ErrCodeServerError, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSubmissionService{err: tt.svcErr}
			ctrl := NewSubmissionController(testLogger, svc)
			rr := httptest.NewRecorder()

			ctrl.Booking(rr, jsonRequest(t, http.MethodPost, "/api/bookings", tt.body))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Len(t, svc.stored, tt.wantStored)
			var body helpers.APIError
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus == http.StatusOK, body.OK)
			assert.Equal(t, tt.wantError, body.Error)
			assert.NotContains(t, body.Message, "permission denied")
		})
	}
}

func TestSubmissionController_BookingStoresRequestMeta(t *testing.T) {
	svc := &fakeSubmissionService{}
	ctrl := NewSubmissionController(testLogger, svc)
	rr := httptest.NewRecorder()

	ctrl.Booking(rr, jsonRequest(t, http.MethodPost, "/api/bookings", validBooking))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "192.0.2.10", svc.lastMeta.IP)
	assert.Equal(t, "test-agent", svc.lastMeta.UserAgent)
	var resp SubmissionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "sub-1", resp.ID)
	assert.Equal(t, "+94771234567", svc.stored[0].Fields["phone"])
}

func TestSubmissionController_OtherForms(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *SubmissionController, w http.ResponseWriter, r *http.Request)
		body       string
		wantStatus int
		wantError  string
	}{
		{"serve ok", (*SubmissionController).Serve, `{"name":"Ravi","email":"ravi@example.com","opportunityId":"ushering","language":"ta"}`, http.StatusOK, ""},
		{"serve without selection", (*SubmissionController).Serve, `{"name":"Ravi","email":"ravi@example.com","language":"ta"}`, http.StatusBadRequest, "invalid_selection"},
		{"serve bad language", (*SubmissionController).Serve, `{"name":"Ravi","email":"ravi@example.com","trainingId":"foundations","language":"fr"}`, http.StatusBadRequest, "invalid_language"},
		{"newsletter ok", (*SubmissionController).Newsletter, `{"email":"Reader@Example.com"}`, http.StatusOK, ""},
		{"newsletter honeypot", (*SubmissionController).Newsletter, `{"email":"x","website":"spam.example"}`, http.StatusOK, ""},
		{"comment ok", (*SubmissionController).Comment, `{"postSlug":"grace-2026","name":"Mary","email":"mary@example.com","comment":"Amen"}`, http.StatusOK, ""},
		{"comment bad slug", (*SubmissionController).Comment, `{"postSlug":"../etc","name":"Mary","email":"mary@example.com","comment":"Amen"}`, http.StatusBadRequest, "invalid_post"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewSubmissionController(testLogger, &fakeSubmissionService{})
			rr := httptest.NewRecorder()
			tt.call(ctrl, rr, jsonRequest(t, http.MethodPost, "/api/form", tt.body))

			require.Equal(t, tt.wantStatus, rr.Code)
			var body helpers.APIError
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}
