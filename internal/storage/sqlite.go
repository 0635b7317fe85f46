package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"waitlist/internal/models"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS waitlist (
    id         TEXT PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS waitlist_created_at_idx ON waitlist (created_at);
`

// SQLiteStorage implements the Storage interface using SQLite through
// database/sql. Suited to single-instance deployments without a managed
// database; timestamps are stored as fixed-width RFC 3339 UTC strings so
// lexical and chronological order agree.
type SQLiteStorage struct {
	db *sql.DB

	now func() time.Time
}

// sqliteTimeFormat keeps a constant width (no trimmed fractional zeros) so
// string comparison in SQL matches time order.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// NewSQLiteStorage creates a new SQLite storage instance and ensures the
// schema exists.
func NewSQLiteStorage(config Config) (Storage, error) {
	if config.ConnectionString == "" {
		return nil, fmt.Errorf("connection string is required for SQLite storage")
	}

	db, err := sql.Open("sqlite", config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &SQLiteStorage{db: db, now: time.Now}, nil
}

// LookupByEmail retrieves an entry by its normalized email.
func (ss *SQLiteStorage) LookupByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	var createdAt string
	err := ss.db.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM waitlist WHERE email = ?`,
		email,
	).Scan(&entry.ID, &entry.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up entry: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	entry.CreatedAt = ts

	return &entry, nil
}

// UpsertEntry inserts the email; the unique index absorbs conflicts and the
// original row wins.
func (ss *SQLiteStorage) UpsertEntry(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	_, err := ss.db.ExecContext(ctx,
		`INSERT INTO waitlist (id, email, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), email, ss.now().UTC().Format(sqliteTimeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert entry: %w", err)
	}

	entry, err := ss.LookupByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to read back upserted entry: %w", err)
	}
	return entry, nil
}

// Count returns the total number of entries.
func (ss *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := ss.db.QueryRowContext(ctx, `SELECT count(*) FROM waitlist`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// EntriesBetween returns entries within the optional created_at bounds,
// ordered ascending by created_at.
func (ss *SQLiteStorage) EntriesBetween(ctx context.Context, from, to *time.Time) ([]*models.WaitlistEntry, error) {
	query := `SELECT id, email, created_at FROM waitlist`
	args := make([]any, 0, 2)

	switch {
	case from != nil && to != nil:
		query += ` WHERE created_at >= ? AND created_at <= ?`
		args = append(args, from.UTC().Format(sqliteTimeFormat), to.UTC().Format(sqliteTimeFormat))
	case from != nil:
		query += ` WHERE created_at >= ?`
		args = append(args, from.UTC().Format(sqliteTimeFormat))
	case to != nil:
		query += ` WHERE created_at <= ?`
		args = append(args, to.UTC().Format(sqliteTimeFormat))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := ss.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WaitlistEntry
	for rows.Next() {
		var entry models.WaitlistEntry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.Email, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		entry.CreatedAt = ts
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, nil
}

// Close closes the database handle.
func (ss *SQLiteStorage) Close() error {
	return ss.db.Close()
}
