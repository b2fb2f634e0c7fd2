package apiroute_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiroute"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg       []apiroute.RequestIDConfig
		header    string
		reqID     string
		wantID    string
		wantUUID  bool
	}{
		"generates uuid when none provided": {
			header:   "X-Request-ID",
			wantUUID: true,
		},
		"preserves valid id": {
			header: "X-Request-ID",
			reqID:  "my-custom-id_123",
			wantID: "my-custom-id_123",
		},
		"replaces id with invalid characters": {
			header:   "X-Request-ID",
			reqID:    "bad id<script>",
			wantUUID: true,
		},
		"replaces overlong id": {
			header:   "X-Request-ID",
			reqID:    strings.Repeat("a", 129),
			wantUUID: true,
		},
		"custom header and generator": {
			cfg: []apiroute.RequestIDConfig{{
				Header:    "X-Trace-ID",
				Generator: func() string { return "fixed" },
			}},
			header: "X-Trace-ID",
			wantID: "fixed",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var fromCtx string
			h := apiroute.RequestID(tc.cfg...)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				fromCtx = apiroute.GetRequestID(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.reqID != "" {
				req.Header.Set(tc.header, tc.reqID)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			id := rec.Header().Get(tc.header)
			assert.Equal(t, id, fromCtx)

			if tc.wantUUID {
				_, err := uuid.Parse(id)
				require.NoError(t, err)
				assert.Len(t, id, 36)
				return
			}
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestRequestIDFromContext_missing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, apiroute.GetRequestID(req))
	assert.Empty(t, apiroute.RequestIDFromContext(req.Context()))
}
