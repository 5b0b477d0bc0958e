package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/racechart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateHistory_NoneBackend(t *testing.T) {
	var out bytes.Buffer
	err := MigrateHistory(schema.NoneBackend, "", -1, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	var out bytes.Buffer

	// Latest version
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1, &out))
	assert.Contains(t, out.String(), "to version 2")
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// Again is a no-op
	out.Reset()
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1, &out))
	assert.Contains(t, out.String(), "No migration needed")

	// Down to version 1, then all the way down, then back up
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1, &out))
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0, &out))
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 2, &out))

	// The migrated schema is usable by the store
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Contains(t, status.TableSizes, renderPointsTable)
}

func TestMigrateHistory_SQLiteInMemory(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, ":memory:", -1, &out))
}
