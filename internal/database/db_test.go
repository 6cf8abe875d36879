package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")

	db, err := New(path)
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.Conn())
	assert.Equal(t, path, db.Path())

	_, err = db.Conn().Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)")
	assert.NoError(t, err)
}

func TestNewPassesThroughFileURI(t *testing.T) {
	db, err := New("file::memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Conn().Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)")
	assert.NoError(t, err)
}

func TestBuildConnectionStringPragmas(t *testing.T) {
	s := buildConnectionString("/tmp/cache.db")
	assert.Contains(t, s, "file:/tmp/cache.db?")
	assert.Contains(t, s, "journal_mode%28WAL%29")
	assert.Contains(t, s, "busy_timeout%285000%29")
}
