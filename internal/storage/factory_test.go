package storage

import (
	"path/filepath"
	"testing"
	"waitlist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_CreateMemory(t *testing.T) {
	factory := NewFactory()

	store, err := factory.Create(models.StorageConfig{Type: models.StorageTypeMemory})
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &MemoryStorage{}, store)
}

func TestFactory_CreateSQLite(t *testing.T) {
	factory := NewFactory()

	store, err := factory.Create(models.StorageConfig{
		Type: models.StorageTypeSQLite,
		Database: models.DatabaseConfig{
			DSN: filepath.Join(t.TempDir(), "factory_test.db"),
		},
	})
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &SQLiteStorage{}, store)
}

func TestFactory_UnsupportedType(t *testing.T) {
	factory := NewFactory()

	_, err := factory.Create(models.StorageConfig{Type: "cassandra"})
	assert.Error(t, err)
}

func TestFactory_SupportedProviders(t *testing.T) {
	factory := NewFactory()
	assert.ElementsMatch(t,
		[]string{models.StorageTypeMemory, models.StorageTypePostgres, models.StorageTypeSQLite},
		factory.GetSupportedProviders(),
	)
}
