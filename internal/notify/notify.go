// Package notify delivers the welcome email to new waitlist entries.
//
// Delivery is strictly best effort: the submission pipeline hands an address
// to the dispatcher and moves on. A slow or broken mail host can delay or
// drop notifications but can never fail a submission.
package notify

import "context"

// Receipt describes the outcome of a single delivery attempt.
type Receipt struct {
	MessageID string
	Accepted  []string
	Rejected  []string
}

// Sender delivers a single notification email.
type Sender interface {
	// Send delivers the welcome email to the given address. Returns a
	// receipt on success.
	Send(ctx context.Context, to string) (*Receipt, error)

	// Configured reports whether the sender has everything it needs to
	// attempt delivery. An unconfigured sender is a valid deployment state,
	// not an error.
	Configured() bool
}
