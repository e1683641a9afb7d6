package mw

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/stickybar/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h := RateLimit(RateLimitConfig{
		Burst:             2,
		RefillPerIPPerMin: 60,
		Now:               func() time.Time { return now },
	})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/banner", nil)
	req.RemoteAddr = "203.0.113.7:5555"

	assert.Equal(t, http.StatusOK, serve(h, req).Code)
	assert.Equal(t, http.StatusOK, serve(h, req).Code)

	rec := serve(h, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	other := httptest.NewRequest(http.MethodGet, "/banner", nil)
	other.RemoteAddr = "203.0.113.8:5555"
	assert.Equal(t, http.StatusOK, serve(h, other).Code, "buckets are per client")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, serve(h, req).Code, "one token refilled after a second")
}

func TestRateLimit_TrustProxy(t *testing.T) {
	now := time.Now()
	h := RateLimit(RateLimitConfig{
		Burst:             1,
		RefillPerIPPerMin: 1,
		TrustProxy:        true,
		Now:               func() time.Time { return now },
	})(okHandler)

	for _, ip := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		assert.Equal(t, http.StatusOK, serve(h, req).Code, ip)
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8", "192.0.2.10"}, false, logger.Nop())(okHandler)

	tests := map[string]int{
		"10.1.2.3:80":     http.StatusOK,
		"192.0.2.10:80":   http.StatusOK,
		"192.0.2.11:80":   http.StatusForbidden,
		"[2001:db8::1]:1": http.StatusForbidden,
	}
	for remote, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
		req.RemoteAddr = remote
		assert.Equal(t, want, serve(h, req).Code, remote)
	}

	open := AllowOnlyCIDRS(nil, false, logger.Nop())(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	req.RemoteAddr = "192.0.2.11:80"
	assert.Equal(t, http.StatusOK, serve(open, req).Code)
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"admin.example.com", "*.internal.lan"}, logger.Nop())(okHandler)

	tests := map[string]int{
		"admin.example.com":      http.StatusOK,
		"ADMIN.example.com:8080": http.StatusOK,
		"blog.internal.lan":      http.StatusOK,
		"example.com":            http.StatusForbidden,
		"evil.com":               http.StatusForbidden,
	}
	for host, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
		req.Host = host
		assert.Equal(t, want, serve(h, req).Code, host)
	}
}

func TestCSRF(t *testing.T) {
	h := CSRF(CSRFConfig{AuthKey: []byte(strings.Repeat("k", 32))}, logger.Nop())(okHandler)

	get := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	get.Header.Set("Sec-Fetch-Site", "cross-site")
	assert.Equal(t, http.StatusOK, serve(h, get).Code, "safe methods pass")

	same := httptest.NewRequest(http.MethodPost, "/admin/settings", nil)
	same.Header.Set("Sec-Fetch-Site", "same-origin")
	assert.Equal(t, http.StatusOK, serve(h, same).Code)

	cross := httptest.NewRequest(http.MethodPost, "/admin/settings", nil)
	cross.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := serve(h, cross)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "CSRF validation failed")
}

func TestLog_PassesStatusThrough(t *testing.T) {
	h := Log(logger.Nop(), "/healthz")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
