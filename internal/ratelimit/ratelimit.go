// Package ratelimit provides a fixed-window in-memory rate limiter
// keyed by caller identity. Counts reset when a window expires, so a
// burst at a window boundary can briefly exceed the configured rate;
// that trade-off keeps the limiter lock-cheap and dependency-free.
package ratelimit

import (
	"sync"
	"time"
)

// Result describes the outcome of a limiter check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window expires and the count resets.
	ResetAt time.Time
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

// Limiter enforces a maximum number of requests per fixed time window
// for each key. It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry

	maxRequests int
	window      time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// New creates a Limiter allowing maxRequests per window for each key.
// Non-positive inputs fall back to 10 requests per minute.
func New(maxRequests int, window time.Duration) *Limiter {
	if maxRequests < 1 {
		maxRequests = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		entries:     make(map[string]*windowEntry),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Check records a request for key and reports whether it is allowed.
// A denied request does not consume from the window.
func (l *Limiter) Check(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &windowEntry{
			count:   0,
			resetAt: now.Add(l.window),
		}
		l.entries[key] = entry
	}

	if entry.count >= l.maxRequests {
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   entry.resetAt,
		}
	}

	entry.count++
	return Result{
		Allowed:   true,
		Remaining: l.maxRequests - entry.count,
		ResetAt:   entry.resetAt,
	}
}

// Reset clears the window for key, restoring its full allowance.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

// Prune removes expired windows. Call periodically from a background
// goroutine to keep memory bounded under many distinct keys.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, entry := range l.entries {
		if now.After(entry.resetAt) {
			delete(l.entries, key)
		}
	}
}
