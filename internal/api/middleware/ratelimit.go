package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a fixed-window in-memory limiter keyed by client IP.
// Good enough for a single gateway process; a shared deployment would
// want a distributed limiter instead.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*window
	requests int
	period   time.Duration
}

type window struct {
	resetAt time.Time
	count   int
}

// NewRateLimiter allows requests per period for each client IP.
func NewRateLimiter(requests int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*window),
		requests: requests,
		period:   period,
	}
	go rl.sweep()
	return rl
}

// Middleware rejects clients over their budget with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	win, ok := rl.clients[client]
	if !ok || now.After(win.resetAt) {
		rl.clients[client] = &window{count: 1, resetAt: now.Add(rl.period)}
		return true
	}
	if win.count >= rl.requests {
		return false
	}
	win.count++
	return true
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.period)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for client, win := range rl.clients {
			if now.After(win.resetAt) {
				delete(rl.clients, client)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP prefers proxy headers, falling back to the socket address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First hop is the original client.
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
