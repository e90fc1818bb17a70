package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/config"
	"github.com/homsent/homsent-chef/backend/internal/model"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{
		StorageBackend: config.StorageSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "chef.db"),
	}

	db, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)

	t.Run("should migrate the records table", func(t *testing.T) {
		require.NoError(t, RunMigrations(db, zap.NewNop()))
		assert.True(t, db.Migrator().HasTable(&model.Record{}))
	})

	t.Run("should report healthy", func(t *testing.T) {
		assert.NoError(t, HealthCheck(context.Background(), db))
	})
}

func TestOpenRejectsNonSQLBackend(t *testing.T) {
	_, err := Open(&config.Config{StorageBackend: config.StorageMemory}, zap.NewNop())
	assert.Error(t, err)
}
