package middleware

import (
	"credit-engine/internal/config"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("blocks a client once its burst is spent", func(t *testing.T) {
		rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2}, discardLogger)
		frozen := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return frozen }
		h := rl.Middleware(okHandler)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "127.0.0.1:12345"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
			if rec.Code == http.StatusTooManyRequests {
				assert.JSONEq(t, `{"error":{"message":"Rate limit exceeded"}}`, rec.Body.String())
				assert.Equal(t, "1", rec.Header().Get("Retry-After"))
			}
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

		other := httptest.NewRequest(http.MethodGet, "/", nil)
		other.RemoteAddr = "10.0.0.9:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, other)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("is a pass-through when disabled", func(t *testing.T) {
		rl := NewRateLimiter(config.RateLimitConfig{Enabled: false}, discardLogger)
		h := rl.Middleware(okHandler)
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestEvictIdle(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RPS: 5, Burst: 5}, discardLogger)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("192.0.2.1")
	now = now.Add(limiterIdleTTL / 2)
	rl.allow("192.0.2.2")
	now = now.Add(limiterIdleTTL/2 + time.Second)

	assert.Equal(t, 1, rl.evictIdle())
	assert.NotContains(t, rl.clients, "192.0.2.1")
	assert.Contains(t, rl.clients, "192.0.2.2")
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"}, "127.0.0.1:1", "192.168.1.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.1"}, "127.0.0.1:1", "10.0.0.1"},
		{"invalid forwarded value falls back", map[string]string{"X-Forwarded-For": "not-an-ip"}, "127.0.0.1:12345", "127.0.0.1"},
		{"remote addr", nil, "127.0.0.1:12345", "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extractIP(req))
		})
	}
}
