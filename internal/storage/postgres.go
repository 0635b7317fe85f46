package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
	"waitlist/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema bootstraps the waitlist table. gen_random_uuid requires the
// pgcrypto extension on Postgres < 13; managed providers ship it enabled.
const pgSchema = `
CREATE TABLE IF NOT EXISTS waitlist (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    email      TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS waitlist_created_at_idx ON waitlist (created_at);
`

// PostgresStorage implements the Storage interface using PostgreSQL via a
// pgx connection pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a new PostgreSQL storage instance and ensures
// the schema exists.
func NewPostgresStorage(config Config) (Storage, error) {
	if config.ConnectionString == "" {
		return nil, fmt.Errorf("connection string is required for PostgreSQL storage")
	}

	poolCfg, err := pgxpool.ParseConfig(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if config.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(config.MaxOpenConns)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(context.Background(), pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &PostgresStorage{pool: pool}, nil
}

// LookupByEmail retrieves an entry by its normalized email.
func (ps *PostgresStorage) LookupByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	err := ps.pool.QueryRow(ctx,
		`SELECT id, email, created_at FROM waitlist WHERE email = $1`,
		email,
	).Scan(&entry.ID, &entry.Email, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up entry: %w", err)
	}
	return &entry, nil
}

// UpsertEntry inserts the email, relying on the unique index to absorb
// conflicts. DO NOTHING keeps the original row (and its created_at) when the
// email already exists; the follow-up select returns whichever row won.
func (ps *PostgresStorage) UpsertEntry(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	_, err := ps.pool.Exec(ctx,
		`INSERT INTO waitlist (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert entry: %w", err)
	}

	entry, err := ps.LookupByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to read back upserted entry: %w", err)
	}
	return entry, nil
}

// Count returns the total number of entries.
func (ps *PostgresStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := ps.pool.QueryRow(ctx, `SELECT count(*) FROM waitlist`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// EntriesBetween returns entries within the optional created_at bounds,
// ordered ascending by created_at.
func (ps *PostgresStorage) EntriesBetween(ctx context.Context, from, to *time.Time) ([]*models.WaitlistEntry, error) {
	query := `SELECT id, email, created_at FROM waitlist`
	args := make([]any, 0, 2)

	switch {
	case from != nil && to != nil:
		query += ` WHERE created_at >= $1 AND created_at <= $2`
		args = append(args, *from, *to)
	case from != nil:
		query += ` WHERE created_at >= $1`
		args = append(args, *from)
	case to != nil:
		query += ` WHERE created_at <= $1`
		args = append(args, *to)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := ps.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WaitlistEntry
	for rows.Next() {
		var entry models.WaitlistEntry
		if err := rows.Scan(&entry.ID, &entry.Email, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, nil
}

// Close closes the connection pool.
func (ps *PostgresStorage) Close() error {
	ps.pool.Close()
	return nil
}
