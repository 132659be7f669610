package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praisetabernacle/internal/metrics"
)

// recordingHandler keeps every log record it receives.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) last(t *testing.T) (slog.Record, map[string]slog.Value) {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	require.NotEmpty(t, h.records)
	rec := h.records[len(h.records)-1]
	attrs := map[string]slog.Value{}
	rec.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value
		return true
	})
	return rec, attrs
}

func TestLoggingMiddleware_LevelFollowsStatus(t *testing.T) {
	h := &recordingHandler{}
	m := metrics.New()

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
		level  slog.Level
	}{
		{"ok", http.MethodGet, "/api/events", http.StatusOK, `{"ok":true}`, slog.LevelInfo},
		{"client error", http.MethodPost, "/api/rsvp", http.StatusConflict, `{}`, slog.LevelWarn},
		{"server error", http.MethodPost, "/api/bookings", http.StatusInternalServerError, ``, slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			rr := httptest.NewRecorder()
			LoggingMiddleware(slog.New(h), m, next).ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			rec, attrs := h.last(t)
			assert.Equal(t, "request", rec.Message)
			assert.Equal(t, tt.level, rec.Level)
			assert.Equal(t, tt.method, attrs["method"].String())
			assert.Equal(t, tt.path, attrs["path"].String())
			assert.Equal(t, int64(tt.status), attrs["status"].Int64())
			assert.Equal(t, int64(len(tt.body)), attrs["bytes"].Int64())
			assert.Equal(t, tt.status, rr.Code)
		})
	}

	n, err := testutil.GatherAndCount(m.Registry(), "tabernacle_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLoggingMiddleware_ImplicitOK(t *testing.T) {
	h := &recordingHandler{}
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	LoggingMiddleware(slog.New(h), nil, next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	_, attrs := h.last(t)
	assert.Equal(t, int64(http.StatusOK), attrs["status"].Int64())
	assert.Equal(t, int64(0), attrs["bytes"].Int64())
}
