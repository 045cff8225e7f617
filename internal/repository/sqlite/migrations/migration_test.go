package migrations

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadMigrations_Ordered(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "000001_create_projects", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Contains(t, migrations[1].Up, "CREATE TABLE IF NOT EXISTS sessions")
	assert.Contains(t, migrations[1].Down, "DROP TABLE IF EXISTS sessions")
}

func TestRunMigrations_CreatesTables(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))

	for _, table := range []string{"projects", "sessions"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db := openMemoryDB(t)

	_, err := db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	err = RunMigrations(context.Background(), db)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "database is in a dirty state"))
	assert.Contains(t, err.Error(), "failed migration(s): [1]")
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 2, extractVersion("000002_create_sessions.up.sql"))
	assert.Equal(t, 0, extractVersion("README.md"))
}
