package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiter_IsAllowed(t *testing.T) {
	rl := NewLoginRateLimiter(3, time.Minute)
	defer rl.Stop()

	ip := "192.168.1.1"

	for i := 0; i < 3; i++ {
		assert.True(t, rl.IsAllowed(ip), "attempt %d should be allowed", i+1)
		rl.RecordAttempt(ip)
	}

	assert.False(t, rl.IsAllowed(ip))
	assert.True(t, rl.IsAllowed("192.168.1.2"))
}

func TestLoginRateLimiter_WindowExpires(t *testing.T) {
	rl := NewLoginRateLimiter(1, time.Minute)
	defer rl.Stop()

	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.RecordAttempt("ip")
	assert.False(t, rl.IsAllowed("ip"))
	assert.InDelta(t, time.Minute.Seconds(), rl.RetryAfter("ip").Seconds(), 0.001)

	now = now.Add(61 * time.Second)
	assert.True(t, rl.IsAllowed("ip"))
	assert.Zero(t, rl.RetryAfter("ip"))
}

func TestLoginRateLimit_Middleware(t *testing.T) {
	rl := NewLoginRateLimiter(2, time.Minute)
	defer rl.Stop()

	handler := LoginRateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1/auth/login", nil)
		req.RemoteAddr = "192.168.1.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPost).Code)
	assert.Equal(t, http.StatusOK, send(http.MethodPost).Code)

	blocked := send(http.MethodPost)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	// non-POST requests are never limited
	assert.Equal(t, http.StatusOK, send(http.MethodGet).Code)
}
