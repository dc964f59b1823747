package db

import (
	"path/filepath"
	"testing"

	"github.com/cqhei/cqhei-survey/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "surveys.db")

	d, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: path}, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := d.DB(); err == nil {
			sqlDB.Close()
		}
	})

	assert.Equal(t, "sqlite", d.Dialector.Name())
	require.NoError(t, d.Exec("CREATE TABLE probe (id INTEGER)").Error)
	assert.FileExists(t, path)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, false)
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestEnsureSchema_NoopOnSQLite(t *testing.T) {
	d, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}, false)
	require.NoError(t, err)

	assert.NoError(t, EnsureSchema(d, "cqhei"))
	assert.NoError(t, EnsureSchema(d, ""))
}
