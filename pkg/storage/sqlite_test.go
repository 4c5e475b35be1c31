package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_RoundTrip(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "gridcal.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Save(testEvents()))

	loaded, err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, testEvents(), loaded)
}

func TestSQLite_SaveReplacesContents(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "gridcal.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Save(testEvents()))
	require.NoError(t, db.Save(testEvents()[:1]))

	loaded, err := db.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "evt-1", loaded[0].ID)
}

func TestSQLite_EmptyDatabase(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "gridcal.db"))
	require.NoError(t, err)
	defer db.Close()

	loaded, err := db.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
