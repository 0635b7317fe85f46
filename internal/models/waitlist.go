package models

import "time"

// WaitlistEntry is a single signup. Entries are created once on the first
// successful submission of a normalized email and are never mutated or
// deleted by this service. Email uniqueness is enforced by the datastore's
// unique index, not by application-level locking.
type WaitlistEntry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionAttempt is the normalized view of one inbound waitlist request.
// It exists only for the duration of the request; nothing about a tripped or
// rejected attempt is persisted.
type SubmissionAttempt struct {
	// Email is the raw value as submitted; the pipeline normalizes it.
	Email string

	// Honeypot is the value of the hidden form field. Real users leave it
	// empty; any non-empty value marks the attempt as automated.
	Honeypot string

	// StartedAt is the epoch-millisecond timestamp the client recorded at
	// form mount, if it sent one. Nil means the dwell-time check is skipped.
	StartedAt *int64

	// CaptchaToken is accepted for forward compatibility but not verified.
	CaptchaToken string
}
