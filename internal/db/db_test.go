package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsUpAndDown(t *testing.T) {
	database, err := OpenMemory()
	require.NoError(t, err)
	defer database.Close()

	var tables []string
	err = database.Select(&tables, "SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('records', 'sessions', 'staff') ORDER BY name")
	require.NoError(t, err)
	assert.Equal(t, []string{"records", "sessions", "staff"}, tables)

	require.NoError(t, RunMigrations(database.DB), "running again is a no-op")

	require.NoError(t, RollbackMigrations(database.DB))
	tables = nil
	err = database.Select(&tables, "SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('records', 'sessions', 'staff')")
	require.NoError(t, err)
	assert.Empty(t, tables)
}
