package storage

import (
	"context"
	"sort"
	"sync"
	"time"
	"waitlist/internal/models"

	"github.com/google/uuid"
)

// MemoryStorage implements the Storage interface using in-memory data
// structures. This provider is ideal for development and testing; data is
// lost on restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]*models.WaitlistEntry // keyed by normalized email

	// now is swappable for tests that need deterministic created_at values.
	now func() time.Time
}

// NewMemoryStorage creates a new memory-based storage instance
func NewMemoryStorage(config Config) (*MemoryStorage, error) {
	return &MemoryStorage{
		entries: make(map[string]*models.WaitlistEntry),
		now:     time.Now,
	}, nil
}

// SetClock replaces the time source. Test helper.
func (m *MemoryStorage) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// LookupByEmail retrieves an entry by its normalized email.
func (m *MemoryStorage) LookupByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.entries[email]
	if !exists {
		return nil, ErrNotFound
	}

	// Return a copy to prevent external modification
	entryCopy := *entry
	return &entryCopy, nil
}

// UpsertEntry inserts the email if absent; a conflicting insert keeps the
// existing row untouched, matching the database backends' ON CONFLICT
// behavior.
func (m *MemoryStorage) UpsertEntry(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[email]; ok {
		entryCopy := *existing
		return &entryCopy, nil
	}

	entry := &models.WaitlistEntry{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: m.now().UTC(),
	}
	m.entries[email] = entry

	entryCopy := *entry
	return &entryCopy, nil
}

// Count returns the total number of entries.
func (m *MemoryStorage) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.entries)), nil
}

// EntriesBetween returns entries within the optional created_at bounds,
// ordered ascending by created_at.
func (m *MemoryStorage) EntriesBetween(ctx context.Context, from, to *time.Time) ([]*models.WaitlistEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*models.WaitlistEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		if from != nil && entry.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && entry.CreatedAt.After(*to) {
			continue
		}
		entryCopy := *entry
		result = append(result, &entryCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// Close is a no-op for memory storage.
func (m *MemoryStorage) Close() error {
	return nil
}
