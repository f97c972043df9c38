package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		if code := do("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}

	if code := do("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("over-limit request: expected 429, got %d", code)
	}

	// A different client has its own window.
	if code := do("10.0.0.2"); code != http.StatusOK {
		t.Fatalf("other client: expected 200, got %d", code)
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if !rl.allow("10.0.0.1", now) {
		t.Fatal("first request should pass")
	}
	if rl.allow("10.0.0.1", now.Add(30*time.Second)) {
		t.Fatal("second request inside the window should be blocked")
	}
	if !rl.allow("10.0.0.1", now.Add(time.Minute)) {
		t.Fatal("request after the window elapsed should pass")
	}
}
