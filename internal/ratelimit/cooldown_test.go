package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldown_FirstPermitAllowed(t *testing.T) {
	cd := NewCooldown(5 * time.Second)

	allowed, info := cd.Allow()
	assert.True(t, allowed)
	assert.Equal(t, 1, info.Limit)
}

func TestCooldown_DeniesWithinInterval(t *testing.T) {
	cd := NewCooldown(5 * time.Second)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	cd.now = func() time.Time { return now }

	allowed, _ := cd.Allow()
	require.True(t, allowed)

	now = now.Add(2 * time.Second)
	allowed, info := cd.Allow()
	assert.False(t, allowed)
	assert.Equal(t, 3*time.Second, info.RetryAfter)
	assert.Equal(t, 3, info.RetryAfterSeconds())
}

func TestCooldown_AllowsAfterInterval(t *testing.T) {
	cd := NewCooldown(5 * time.Second)
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	cd.now = func() time.Time { return now }

	allowed, _ := cd.Allow()
	require.True(t, allowed)

	now = now.Add(5 * time.Second)
	allowed, _ = cd.Allow()
	assert.True(t, allowed)

	// The successful permit restarts the cooldown.
	now = now.Add(time.Second)
	allowed, _ = cd.Allow()
	assert.False(t, allowed)
}
