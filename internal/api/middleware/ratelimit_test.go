package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func limitedHandler(rl *RateLimiter) http.Handler {
	return rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(handler http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiterEnforcesBudget(t *testing.T) {
	handler := limitedHandler(NewRateLimiter(3, time.Minute))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", ""))
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:1234", ""))
}

func TestRateLimiterKeysByClient(t *testing.T) {
	handler := limitedHandler(NewRateLimiter(1, time.Minute))

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", ""))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:9999", ""), "port is not part of the key")
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:1234", ""))
}

func TestRateLimiterUsesFirstForwardedHop(t *testing.T) {
	handler := limitedHandler(NewRateLimiter(1, time.Minute))

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", "203.0.113.7, 198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.9:1234", "203.0.113.7"))
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.9:1234", "203.0.113.8"))
}

func TestRateLimiterWindowResets(t *testing.T) {
	handler := limitedHandler(NewRateLimiter(1, 20*time.Millisecond))

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", ""))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:1234", ""))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234", ""))
}
