package waitlist

import (
	"context"
	"time"
	"waitlist/internal/models"
)

// ServiceInterface defines the waitlist operations exposed to the API layer.
type ServiceInterface interface {
	// Submit runs the full submission pipeline for one attempt.
	Submit(ctx context.Context, attempt models.SubmissionAttempt) (*SubmitResult, error)

	// Count returns the total number of entries.
	Count(ctx context.Context) (int64, error)

	// Export returns entries within the optional created_at bounds, ordered
	// ascending by created_at.
	Export(ctx context.Context, from, to *time.Time) ([]*models.WaitlistEntry, error)
}
