package storage

import (
	"context"
	"time"
	"waitlist/internal/models"
)

// Storage defines the interface for waitlist entry persistence and retrieval.
// It provides a clean abstraction implemented by a managed Postgres database,
// SQLite for lightweight deploys, and an in-memory backend for tests.
type Storage interface {
	// LookupByEmail retrieves an entry by its normalized email.
	// Returns ErrNotFound when no entry exists.
	LookupByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)

	// UpsertEntry inserts an entry for the normalized email, keyed on the
	// unique email column. A conflicting insert is a no-op rather than an
	// error, so rapid resubmissions never fail and the original created_at
	// is preserved. Returns the stored entry.
	UpsertEntry(ctx context.Context, email string) (*models.WaitlistEntry, error)

	// Count returns the total number of entries.
	Count(ctx context.Context) (int64, error)

	// EntriesBetween returns entries whose created_at falls within the
	// optional inclusive bounds, ordered ascending by created_at.
	// Nil bounds are open.
	EntriesBetween(ctx context.Context, from, to *time.Time) ([]*models.WaitlistEntry, error)

	// Close closes the storage connection and cleans up resources.
	Close() error
}

// Config holds configuration for storage backends.
type Config struct {
	// Type specifies the storage backend type (memory, postgres, sqlite).
	Type string `json:"type" yaml:"type"`

	// ConnectionString is used for database backends.
	ConnectionString string `json:"connection_string,omitempty" yaml:"connection_string,omitempty"`

	// MaxOpenConns caps the connection pool for database backends.
	MaxOpenConns int `json:"max_open_conns,omitempty" yaml:"max_open_conns,omitempty"`

	// MaxIdleConns caps idle pooled connections for database backends.
	MaxIdleConns int `json:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty"`
}
