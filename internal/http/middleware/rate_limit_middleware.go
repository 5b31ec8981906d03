package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sandeepkv93/product-catalog-service/internal/http/response"
)

type fixedWindow struct {
	count       int
	windowStart time.Time
}

// RateLimiter applies a per-client fixed-window limit keyed by remote IP.
// Counters live in process memory; a multi-instance deployment would need a
// shared store behind the same interface.
type RateLimiter struct {
	mu     sync.Mutex
	store  map[string]*fixedWindow
	limit  int
	window time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  make(map[string]*fixedWindow),
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.store[key]
	if !ok || now.Sub(w.windowStart) >= rl.window {
		rl.store[key] = &fixedWindow{count: 1, windowStart: now}
		return true, 0
	}
	if w.count >= rl.limit {
		return false, rl.window - now.Sub(w.windowStart)
	}
	w.count++
	return true, 0
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			ok, retryAfter := rl.allow(key)
			if !ok {
				seconds := int(retryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				response.Error(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
