package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Window(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.IsAllowed("v1"))
	assert.True(t, rl.IsAllowed("v1"))
	assert.False(t, rl.IsAllowed("v1"))
	assert.True(t, rl.IsAllowed("v2"), "keys are independent")

	assert.Equal(t, time.Minute, rl.RetryAfter("v1"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.IsAllowed("v1"))
	assert.Equal(t, time.Duration(0), rl.RetryAfter("v1"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(5, time.Second)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.IsAllowed("a")
	rl.IsAllowed("b")
	assert.Equal(t, 2, rl.Keys())

	now = now.Add(2 * time.Second)
	rl.cleanup()
	assert.Equal(t, 0, rl.Keys())
}

func TestRateLimiter_RunStopsWithContext(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rl.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/ai/chat", nil)
	req.RemoteAddr = "198.51.100.10:5000"
	req = req.WithContext(WithVisitorID(req.Context(), "visitor-1"))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	// a fresh visitor id from the same address shares the window
	fresh := httptest.NewRequest("POST", "/ai/chat", nil)
	fresh.RemoteAddr = "198.51.100.10:6000"
	fresh = fresh.WithContext(WithVisitorID(fresh.Context(), "visitor-2"))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, fresh)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	other := httptest.NewRequest("POST", "/ai/chat", nil)
	other.RemoteAddr = "192.0.2.1:1234"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}
