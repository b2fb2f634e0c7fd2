package apiroute_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiroute"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status    int
		wantLevel string
	}{
		"success logs info":      {status: http.StatusOK, wantLevel: "INFO"},
		"client error logs warn": {status: http.StatusBadRequest, wantLevel: "WARN"},
		"server error logs error": {
			status:    http.StatusServiceUnavailable,
			wantLevel: "ERROR",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			h := apiroute.Chain(
				apiroute.RequestID(apiroute.RequestIDConfig{Generator: func() string { return "req-1" }}),
				apiroute.Logger(logger),
			)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("hello"))
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users", nil))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "request", entry["msg"])
			assert.Equal(t, tc.wantLevel, entry["level"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, "/users", entry["path"])
			assert.InDelta(t, tc.status, entry["status"], 0)
			assert.InDelta(t, 5, entry["size"], 0)
			assert.Equal(t, "req-1", entry["request_id"])
		})
	}
}

func TestLogger_default_status(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := apiroute.Logger(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/users/1", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.InDelta(t, http.StatusOK, entry["status"], 0)
	assert.NotContains(t, entry, "request_id")
}
