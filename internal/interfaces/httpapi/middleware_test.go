package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	idgen "github.com/riskibarqy/football-stats/internal/platform/id"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantVary    bool
		wantHeaders bool
	}{
		{name: "configured origin", allowed: []string{"https://stats.example.com"}, method: http.MethodGet, origin: "https://stats.example.com", wantStatus: http.StatusOK, wantOrigin: "https://stats.example.com", wantVary: true, wantHeaders: true},
		{name: "wildcard preflight", allowed: []string{" * "}, method: http.MethodOptions, origin: "https://stats.example.com", wantStatus: http.StatusNoContent, wantOrigin: "*", wantHeaders: true},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: "https://other.example.com", wantStatus: http.StatusOK},
		{name: "unconfigured preflight still short circuits", allowed: nil, method: http.MethodOptions, origin: "https://other.example.com", wantStatus: http.StatusNoContent},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, "/v1/teams/33", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tc.allowed, okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.wantVary, rec.Header().Get("Vary") == "Origin")
			if tc.wantHeaders {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), InternalJobTokenHeader)
				assert.Equal(t, corsMaxAge, rec.Header().Get("Access-Control-Max-Age"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", "/metrics", " /HEALTHZ "} {
		assert.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/teams/33", "/v1/admin/jobs/abc", "/"} {
		assert.True(t, shouldTraceRequest(path), path)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{name: "match", configured: "secret", provided: " secret ", want: http.StatusOK},
		{name: "mismatch", configured: "secret", provided: "nope", want: http.StatusUnauthorized},
		{name: "missing header", configured: "secret", want: http.StatusUnauthorized},
		{name: "not configured", configured: "  ", provided: "secret", want: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/chunks", nil)
			if tc.provided != "" {
				req.Header.Set(InternalJobTokenHeader, tc.provided)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tc.configured, okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	})
	handler := RequestID(idgen.Static("req-1"), next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/1", nil))
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/1", nil)
	req.Header.Set(RequestIDHeader, "upstream-7")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-7", seen)
	assert.Equal(t, "upstream-7", rec.Header().Get(RequestIDHeader))
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	handler := RequestLogging(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		rec, ok := w.(*statusRecorder)
		require.True(t, ok)
		_, _ = w.Write([]byte("hello"))
		assert.Equal(t, http.StatusOK, rec.Status())
		assert.EqualValues(t, 5, rec.written)
		w.WriteHeader(http.StatusTeapot)
		assert.Equal(t, http.StatusOK, rec.Status())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/1", nil))
	assert.Equal(t, "hello", rec.Body.String())
}
