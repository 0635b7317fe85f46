// Package ratelimit provides rate limiting for HTTP requests using a
// per-key fixed counting window, plus a single-slot cooldown for the export
// endpoint. It includes HTTP middleware that sets standard rate limit
// response headers and extracts a best-effort client identity from proxy
// headers.
package ratelimit

import "time"

// Limiter defines the rate limiting contract. Implementations must be safe
// for concurrent use.
type Limiter interface {
	// Allow checks whether a request identified by key should be allowed.
	// Returns whether the request is allowed and rate information for
	// populating response headers.
	Allow(key string) (allowed bool, info Info)

	// Close stops background goroutines and releases resources.
	Close()
}

// Info contains rate limit state for populating response headers.
type Info struct {
	Limit      int           // Maximum requests per window
	Remaining  int           // Requests left in the current window
	ResetAt    time.Time     // When the current window ends
	RetryAfter time.Duration // How long to wait (meaningful only when denied)
}

// RetryAfterSeconds converts the retry hint to whole seconds for the
// Retry-After header and JSON body, rounding up with a minimum of 1.
func (i Info) RetryAfterSeconds() int {
	secs := int((i.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
