package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/interest-waitlist/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrustedProxies(t *testing.T) {
	assert.Nil(t, parseTrustedProxies(""))
	assert.Nil(t, parseTrustedProxies(" , "))
	assert.Equal(t, []string{"0.0.0.0/0", "::/0"}, parseTrustedProxies(" * "))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.0/8"}, parseTrustedProxies("10.0.0.1, 10.0.0.0/8,"))
}

func TestHSTSHeaderValue(t *testing.T) {
	cases := map[string]struct {
		env  map[string]string
		want string
	}{
		"off outside production": {map[string]string{"APP_ENV": "development"}, ""},
		"on in production":       {map[string]string{"APP_ENV": "production"}, "max-age=31536000; includeSubDomains"},
		"forced on":              {map[string]string{"APP_ENV": "local", "HSTS_ENABLED": "true", "HSTS_MAX_AGE": "60", "HSTS_INCLUDE_SUBDOMAINS": "false"}, "max-age=60"},
		"forced off":             {map[string]string{"APP_ENV": "prod", "HSTS_ENABLED": "false"}, ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"APP_ENV", "HSTS_ENABLED", "HSTS_MAX_AGE", "HSTS_INCLUDE_SUBDOMAINS"} {
				t.Setenv(key, tc.env[key])
			}
			assert.Equal(t, tc.want, hstsHeaderValue())
		})
	}
}

func TestSecurityHeaders_HSTSOnlyOverHTTPS(t *testing.T) {
	t.Setenv("HSTS_ENABLED", "true")

	rs := newTestRouterService(t)
	mountTestController(rs, nil)

	plain := serve(rs, httptest.NewRequest(http.MethodGet, "/ip", nil))
	assert.Equal(t, "nosniff", plain.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", plain.Header().Get("X-Frame-Options"))
	assert.Empty(t, plain.Header().Get("Strict-Transport-Security"))

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	assert.NotEmpty(t, serve(rs, req).Header().Get("Strict-Transport-Security"))
}

func TestCORS(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://example.com, https://www.example.com")

	rs := newTestRouterService(t)
	mountTestController(rs, nil)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
		req.Header.Set("Origin", "https://www.example.com")

		w := serve(rs, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://www.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("other origins get no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.Header.Set("Origin", "https://evil.example")

		w := serve(rs, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMetrics_CountsRateLimitedRequests(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "")

	rs := newTestRouterService(t)
	mountTestController(rs, ratelimit.NewFixedWindowRateLimiter(1, time.Minute))

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		serve(rs, req)
	}

	w := serve(rs, httptest.NewRequest(http.MethodGet, metricsPath, nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_rate_limited_total{scope="POST-/echo"} 1`)
	assert.Contains(t, body, `http_requests_total{method="POST",route="/echo",status="201"} 1`)
	assert.Contains(t, body, `http_requests_total{method="POST",route="/echo",status="429"} 1`)
}

func TestMetrics_Disabled(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "false")

	rs := newTestRouterService(t)
	assert.Nil(t, rs.metrics)
	assert.Equal(t, http.StatusNotFound, serve(rs, httptest.NewRequest(http.MethodGet, metricsPath, nil)).Code)
}
