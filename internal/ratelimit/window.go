package ratelimit

import (
	"sync"
	"time"
)

// bucket is one client's counter for the current window.
type bucket struct {
	count   int
	resetAt time.Time
}

// WindowLimiter is an in-memory fixed-window rate limiter. Each unique key
// gets its own counter: the first hit of a window (or any hit after the
// window expired) starts a fresh bucket at count 1; further hits increment
// until MaxHits, after which requests are denied until the window resets.
//
// A background goroutine periodically evicts buckets whose window ended more
// than one sweep interval ago, so the map does not grow without bound under
// churning client keys.
type WindowLimiter struct {
	window  time.Duration
	maxHits int
	sweep   time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	done    chan struct{}
	closed  bool

	// now is swappable for tests.
	now func() time.Time
}

// NewWindowLimiter creates a fixed-window limiter allowing maxHits requests
// per key per window. It starts a background goroutine for eviction.
func NewWindowLimiter(maxHits int, window, sweepInterval time.Duration) *WindowLimiter {
	w := &WindowLimiter{
		window:  window,
		maxHits: maxHits,
		sweep:   sweepInterval,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go w.cleanup()
	return w
}

// Allow checks whether a request from the given key should be allowed.
// Bucket mutation happens under the lock so concurrent requests for the same
// key cannot both read a stale count and slip past the limit.
func (w *WindowLimiter) Allow(key string) (bool, Info) {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{count: 1, resetAt: now.Add(w.window)}
		w.buckets[key] = b
		return true, w.info(b, now, 0)
	}

	if b.count >= w.maxHits {
		return false, w.info(b, now, b.resetAt.Sub(now))
	}

	b.count++
	return true, w.info(b, now, 0)
}

func (w *WindowLimiter) info(b *bucket, now time.Time, retryAfter time.Duration) Info {
	remaining := w.maxHits - b.count
	if remaining < 0 {
		remaining = 0
	}
	return Info{
		Limit:      w.maxHits,
		Remaining:  remaining,
		ResetAt:    b.resetAt,
		RetryAfter: retryAfter,
	}
}

// Close stops the background cleanup goroutine.
func (w *WindowLimiter) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.done)
	}
}

// cleanup periodically evicts buckets whose window has long passed.
func (w *WindowLimiter) cleanup() {
	ticker := time.NewTicker(w.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.evictStale()
		}
	}
}

// evictStale removes buckets whose window ended more than one sweep interval
// ago. Buckets still inside their window are never touched.
func (w *WindowLimiter) evictStale() {
	cutoff := w.now().Add(-w.sweep)
	w.mu.Lock()
	defer w.mu.Unlock()
	for key, b := range w.buckets {
		if b.resetAt.Before(cutoff) {
			delete(w.buckets, key)
		}
	}
}
