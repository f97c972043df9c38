package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter throttles credential-guessing and verification-resend abuse on
// the auth routes. Counting is per client address over a fixed window and
// lives in memory, so limits apply per server instance.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

type clientWindow struct {
	startedAt time.Time
	requests  int
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}

	go rl.evictStale()

	return rl
}

// evictStale drops windows that have fully elapsed so idle clients do not
// accumulate in the map.
func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-rl.window)
		rl.mu.Lock()
		for addr, cw := range rl.clients {
			if cw.startedAt.Before(cutoff) {
				delete(rl.clients, addr)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(addr string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[addr]
	if !ok || now.Sub(cw.startedAt) >= rl.window {
		rl.clients[addr] = &clientWindow{startedAt: now, requests: 1}
		return true
	}

	cw.requests++
	return cw.requests <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RealIP middleware has already rewritten RemoteAddr upstream.
		if !rl.allow(r.RemoteAddr, time.Now()) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
