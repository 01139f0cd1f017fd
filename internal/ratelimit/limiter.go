// ABOUTME: Fixed-window rate limiter keyed by client address for the chat endpoint
// ABOUTME: Maintains a swept in-memory window map so the key set stays bounded

package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// window tracks one client's request count for the current window.
type window struct {
	count   int
	resetAt time.Time
}

// Limiter enforces a fixed-window limit: up to max requests per window per
// key. The first request after a window lapses starts a fresh window rather
// than sliding the old one.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	period  time.Duration
	now     func() time.Time
	done    chan struct{}
	closed  bool
}

// New creates a limiter allowing max requests per period for each key.
// A background goroutine periodically sweeps lapsed windows so the map
// does not grow without bound.
func New(max int, period time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		max:     max,
		period:  period,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow records a request for key and reports whether it fits in the
// current window. Denied requests do not advance the count.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) || now.Equal(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.period)}
		return true
	}

	if w.count >= l.max {
		return false
	}

	w.count++
	return true
}

// RetryAfter returns how long until the key's window resets. Returns zero
// when the key has no live window.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok {
		return 0
	}

	remaining := w.resetAt.Sub(l.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// sweep runs in a background goroutine, periodically dropping lapsed windows.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.runSweep()
		case <-l.done:
			return
		}
	}
}

// runSweep removes all lapsed windows from the map.
func (l *Limiter) runSweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
		}
	}
}

// Close stops the background sweep goroutine. Safe to call multiple times.
func (l *Limiter) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.closed {
		close(l.done)
		l.closed = true
	}
}

// ClientKey derives the limiter key for a request: the first hop of
// X-Forwarded-For, then X-Real-IP, then the connection's remote address.
// Requests with no discernible address share the "unknown" bucket, which
// collectively throttles rather than exempts them.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}

	return "unknown"
}
