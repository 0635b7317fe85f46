// Package botguard holds the lightweight bot-resistance heuristics applied to
// waitlist submissions before any datastore work: a honeypot field and a
// minimum form dwell time. Either heuristic alone marks the attempt as
// automated.
//
// Tripped attempts are answered with an empty success (204, no body, no side
// effects) so scripted submitters cannot tell blocked from accepted and
// calibrate around the defense.
package botguard

import (
	"strings"
	"time"
	"waitlist/internal/models"
)

// Trip reasons, for operational logs only. Never sent to clients.
const (
	ReasonHoneypot  = "honeypot"
	ReasonDwellTime = "dwell_time"
)

// Result is the outcome of evaluating one submission.
type Result struct {
	Tripped bool
	Reason  string
}

// Guard evaluates submissions against the configured heuristics.
type Guard struct {
	// minFill is the minimum believable time between form mount and
	// submission. Zero disables the dwell-time check entirely.
	minFill time.Duration
}

// New creates a Guard with the given minimum dwell time.
func New(minFill time.Duration) *Guard {
	return &Guard{minFill: minFill}
}

// Evaluate applies both heuristics to the attempt at the given time.
//
// The dwell-time check is advisory: a client that never sent startedAt is not
// penalized, since older form builds and no-JS browsers cannot send it.
func (g *Guard) Evaluate(attempt models.SubmissionAttempt, now time.Time) Result {
	if strings.TrimSpace(attempt.Honeypot) != "" {
		return Result{Tripped: true, Reason: ReasonHoneypot}
	}

	if g.minFill > 0 && attempt.StartedAt != nil {
		started := time.UnixMilli(*attempt.StartedAt)
		if now.Sub(started) < g.minFill {
			return Result{Tripped: true, Reason: ReasonDwellTime}
		}
	}

	return Result{}
}
