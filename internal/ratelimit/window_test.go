package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with a controllable clock. The cleanup
// goroutine still runs but with a long interval it never interferes.
func newTestLimiter(maxHits int, window time.Duration) (*WindowLimiter, *time.Time) {
	limiter := NewWindowLimiter(maxHits, window, time.Hour)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	return limiter, &now
}

func TestWindowLimiter_AllowUnderLimit(t *testing.T) {
	limiter, _ := newTestLimiter(20, 10*time.Second)
	defer limiter.Close()

	allowed, info := limiter.Allow("192.168.1.1")
	assert.True(t, allowed)
	assert.Equal(t, 20, info.Limit)
	assert.Equal(t, 19, info.Remaining)
	assert.False(t, info.ResetAt.IsZero())
}

func TestWindowLimiter_DeniesTwentyFirstHit(t *testing.T) {
	limiter, now := newTestLimiter(20, 10*time.Second)
	defer limiter.Close()

	key := "192.168.1.1"

	for i := 0; i < 20; i++ {
		*now = now.Add(100 * time.Millisecond)
		allowed, _ := limiter.Allow(key)
		require.True(t, allowed, "request %d should be allowed", i+1)
	}

	// 21st request inside the same window
	allowed, info := limiter.Allow(key)
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.True(t, info.RetryAfter > 0)
	assert.GreaterOrEqual(t, info.RetryAfterSeconds(), 1)
}

func TestWindowLimiter_WindowResetsCounter(t *testing.T) {
	limiter, now := newTestLimiter(20, 10*time.Second)
	defer limiter.Close()

	key := "client"

	for i := 0; i < 20; i++ {
		limiter.Allow(key)
	}
	allowed, _ := limiter.Allow(key)
	require.False(t, allowed)

	// First request after the window elapses is allowed and starts a fresh
	// bucket at count 1.
	*now = now.Add(10 * time.Second)
	allowed, info := limiter.Allow(key)
	assert.True(t, allowed)
	assert.Equal(t, 19, info.Remaining)

	limiter.mu.Lock()
	assert.Equal(t, 1, limiter.buckets[key].count)
	limiter.mu.Unlock()
}

func TestWindowLimiter_RetryAfterRoundsUp(t *testing.T) {
	limiter, now := newTestLimiter(1, 10*time.Second)
	defer limiter.Close()

	limiter.Allow("k")
	*now = now.Add(9500 * time.Millisecond)

	allowed, info := limiter.Allow("k")
	require.False(t, allowed)
	assert.Equal(t, 500*time.Millisecond, info.RetryAfter)
	assert.Equal(t, 1, info.RetryAfterSeconds())
}

func TestWindowLimiter_DifferentKeysIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(2, 10*time.Second)
	defer limiter.Close()

	limiter.Allow("key1")
	limiter.Allow("key1")
	allowed1, _ := limiter.Allow("key1")
	assert.False(t, allowed1, "key1 should be denied")

	allowed2, _ := limiter.Allow("key2")
	assert.True(t, allowed2, "key2 should be allowed")
}

func TestWindowLimiter_EvictStale(t *testing.T) {
	limiter, now := newTestLimiter(20, 10*time.Second)
	defer limiter.Close()
	limiter.sweep = time.Minute

	limiter.Allow("old-client")
	*now = now.Add(2 * time.Minute)
	limiter.Allow("fresh-client")

	limiter.evictStale()

	limiter.mu.Lock()
	_, oldExists := limiter.buckets["old-client"]
	_, freshExists := limiter.buckets["fresh-client"]
	limiter.mu.Unlock()

	assert.False(t, oldExists, "expired bucket should be evicted")
	assert.True(t, freshExists, "active bucket should survive the sweep")
}

func TestWindowLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewWindowLimiter(1000, 10*time.Second, time.Hour)
	defer limiter.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("client-%d", id%5)
			for j := 0; j < 20; j++ {
				limiter.Allow(key)
			}
		}(i)
	}
	wg.Wait()

	// 200 hits per key, all within the limit and all under the lock.
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	for key, b := range limiter.buckets {
		assert.Equal(t, 200, b.count, "no increments lost for %s", key)
	}
}

func TestWindowLimiter_Close(t *testing.T) {
	limiter := NewWindowLimiter(20, 10*time.Second, 100*time.Millisecond)
	limiter.Close()
	// Should not panic on double close or use after close
	limiter.Close()
	allowed, _ := limiter.Allow("k")
	assert.True(t, allowed)
}
