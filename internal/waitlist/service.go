// Package waitlist implements the submission pipeline that sits between the
// API layer and storage: bot heuristics, email validation, the idempotent
// upsert, and the best-effort notification handoff.
package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"waitlist/internal/botguard"
	"waitlist/internal/emailaddr"
	"waitlist/internal/models"
	"waitlist/internal/storage"
)

// Enqueuer hands an address to the notification queue without blocking.
type Enqueuer interface {
	Enqueue(email string) bool
}

// SubmitResult is the outcome of one submission attempt.
type SubmitResult struct {
	// Discarded is true when a bot heuristic tripped. The attempt had no
	// side effects and the API layer answers with an empty success so the
	// submitter cannot tell blocked from accepted.
	Discarded bool

	// AlreadyOnList is true when the normalized email was stored before
	// this attempt.
	AlreadyOnList bool

	// Entry is the stored row. Nil when Discarded.
	Entry *models.WaitlistEntry
}

// Service runs the waitlist pipeline.
type Service struct {
	store    storage.Storage
	guard    *botguard.Guard
	notifier Enqueuer
	logger   *slog.Logger

	now func() time.Time
}

// NewService creates the pipeline service. notifier may be nil when no
// notification path is configured.
func NewService(store storage.Storage, guard *botguard.Guard, notifier Enqueuer, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		guard:    guard,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit runs one attempt through the pipeline in order: bot heuristics,
// email validation, duplicate lookup, upsert, notification handoff.
//
// A tripped heuristic short-circuits before validation so automated
// submissions learn nothing about the email rules. Only a first-time insert
// queues a notification; resubmissions are quiet no-ops.
func (s *Service) Submit(ctx context.Context, attempt models.SubmissionAttempt) (*SubmitResult, error) {
	if verdict := s.guard.Evaluate(attempt, s.now()); verdict.Tripped {
		s.logger.Info("submission discarded", "reason", verdict.Reason)
		return &SubmitResult{Discarded: true}, nil
	}

	email := emailaddr.Normalize(attempt.Email)
	if !emailaddr.Valid(email) {
		return nil, ErrInvalidEmail
	}

	existing, err := s.store.LookupByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing entry: %w", err)
	}
	alreadyOnList := existing != nil

	// Upsert even when the lookup found a row: the conflict clause makes it
	// a no-op, and a failing datastore surfaces on resubmissions too.
	entry, err := s.store.UpsertEntry(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to store entry: %w", err)
	}

	if alreadyOnList {
		s.logger.Debug("email already on waitlist", "entry_id", entry.ID)
		return &SubmitResult{AlreadyOnList: true, Entry: entry}, nil
	}

	s.logger.Info("waitlist entry created", "entry_id", entry.ID)

	if s.notifier != nil {
		s.notifier.Enqueue(email)
	}

	return &SubmitResult{Entry: entry}, nil
}

// Count returns the total number of entries.
func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// Export returns entries within the optional created_at bounds, ordered
// ascending by created_at.
func (s *Service) Export(ctx context.Context, from, to *time.Time) ([]*models.WaitlistEntry, error) {
	entries, err := s.store.EntriesBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to export entries: %w", err)
	}
	return entries, nil
}
