// ABOUTME: Rate limiting middleware for API endpoints
// ABOUTME: Implements per-IP token buckets with golang.org/x/time/rate

package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor is one client's token bucket
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out a token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	every    rate.Limit
	idle     time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewRateLimiter allows limit requests per window per client, with bursts
// up to limit. Call Close to stop the idle-visitor sweeper.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		every:    rate.Every(window / time.Duration(limit)),
		idle:     3 * window,
		stop:     make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// cleanup forgets visitors that have been idle for a while
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, v := range rl.visitors {
				if now.Sub(v.lastSeen) > rl.idle {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Close stops the sweeper goroutine
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

// Allow reports whether a request from key may proceed now
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.every, rl.limit)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	return v.limiter.Allow()
}

// retryAfter is the whole number of seconds until one token is available
func (rl *RateLimiter) retryAfter() int {
	secs := int(math.Ceil(1 / float64(rl.every)))
	if secs < 1 {
		return 1
	}
	return secs
}

// extractIP gets the client IP from the request
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the originating client
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimitMiddleware creates a middleware that enforces rate limits
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			w.Header().Set("X-RateLimit-Window", limiter.window.String())

			if !limiter.Allow(extractIP(r)) {
				w.Header().Set("Content-Type", "application/problem+json")
				w.Header().Set("Retry-After", strconv.Itoa(limiter.retryAfter()))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"title":"Too Many Requests","status":429,"detail":"Rate limit exceeded. Please try again later."}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
