package ratelimit

import (
	"sync"
	"time"
)

// Cooldown is a single-slot limiter: one permit per fixed interval,
// process-wide, regardless of caller. It guards the export endpoint
// independently of the per-client window limiter.
type Cooldown struct {
	interval time.Duration

	mu      sync.Mutex
	lastHit time.Time

	now func() time.Time
}

// NewCooldown creates a cooldown with the given interval between permits.
func NewCooldown(interval time.Duration) *Cooldown {
	return &Cooldown{
		interval: interval,
		now:      time.Now,
	}
}

// Allow returns whether a permit is available. When denied, the Info carries
// the time until the slot frees up.
func (c *Cooldown) Allow() (bool, Info) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := now.Sub(c.lastHit)
	if !c.lastHit.IsZero() && elapsed < c.interval {
		return false, Info{
			Limit:      1,
			Remaining:  0,
			ResetAt:    c.lastHit.Add(c.interval),
			RetryAfter: c.interval - elapsed,
		}
	}

	c.lastHit = now
	return true, Info{
		Limit:     1,
		Remaining: 0,
		ResetAt:   now.Add(c.interval),
	}
}
