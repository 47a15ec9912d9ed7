package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddlewareLimitsPerIP(t *testing.T) {
	l := New()
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 5; i++ {
		if code := do("10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, code)
		}
	}
	if code := do("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("burst exceeded: status %d, want 429", code)
	}
	// Another client has its own bucket.
	if code := do("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("second client: status %d", code)
	}
}

func TestSweepDropsIdleClients(t *testing.T) {
	l := New()
	l.limiterFor("10.0.0.1")

	l.mu.Lock()
	l.clients["10.0.0.1"].seen = time.Now().Add(-time.Hour)
	l.lastSweep = time.Now().Add(-2 * sweepEvery)
	l.mu.Unlock()

	l.limiterFor("10.0.0.2")

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.clients["10.0.0.1"]; ok {
		t.Error("idle client bucket survived the sweep")
	}
	if _, ok := l.clients["10.0.0.2"]; !ok {
		t.Error("active client bucket missing")
	}
}
