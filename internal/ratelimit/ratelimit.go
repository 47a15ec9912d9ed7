package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter applies a per-client-IP token bucket to the public form
// endpoints. Defaults allow a burst of 5 submissions and a sustained rate
// of one every two seconds, which is generous for a human and tight for a
// script.
type Limiter struct {
	mu        sync.Mutex
	clients   map[string]*entry
	r         rate.Limit
	burst     int
	lastSweep time.Time
}

type entry struct {
	lim  *rate.Limiter
	seen time.Time
}

const (
	sweepEvery = time.Minute
	idleAfter  = 10 * time.Minute
)

func New() *Limiter {
	return &Limiter{
		clients:   make(map[string]*entry),
		r:         rate.Every(2 * time.Second),
		burst:     5,
		lastSweep: time.Now(),
	}
}

// sweep drops idle client buckets so the map does not grow without bound.
// Runs inline under the lock at most once per sweepEvery; no background
// goroutine to stop.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepEvery {
		return
	}
	l.lastSweep = now
	for ip, e := range l.clients {
		if now.Sub(e.seen) > idleAfter {
			delete(l.clients, ip)
		}
	}
}

func (l *Limiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	l.sweep(now)
	e, ok := l.clients[ip]
	if !ok {
		// golang.org/x/time/rate: token bucket per client IP.
		e = &entry{lim: rate.NewLimiter(l.r, l.burst)}
		l.clients[ip] = e
	}
	e.seen = now
	return e.lim
}

// Middleware rejects over-limit requests with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !l.limiterFor(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "too many requests, slow down"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
