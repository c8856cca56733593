package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteService(t *testing.T) (Service, string) {
	t.Helper()
	url := "sqlite:///" + filepath.Join(t.TempDir(), "test.db")
	srv, err := New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv, url
}

func TestNew(t *testing.T) {
	srv, _ := newSQLiteService(t)

	assert.Equal(t, SQLite, srv.Dialect())
	assert.NotNil(t, srv.DB())
}

func TestNewRejectsUnknownURL(t *testing.T) {
	_, err := New(context.Background(), "mysql://root@localhost/notes")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}

func TestHealth(t *testing.T) {
	srv, _ := newSQLiteService(t)

	stats := srv.Health()

	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "It's healthy", stats["message"])
	assert.Equal(t, "sqlite", stats["dialect"])
	assert.Contains(t, stats, "open_connections")
}

func TestHealthAfterClose(t *testing.T) {
	srv, err := New(context.Background(), "sqlite:///"+filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, srv.Close())

	stats := srv.Health()

	assert.Equal(t, "down", stats["status"])
	assert.Contains(t, stats["error"], "db down")
}

func TestMigrateIsIdempotent(t *testing.T) {
	srv, url := newSQLiteService(t)
	_, dsn, err := ParseURL(url)
	require.NoError(t, err)

	require.NoError(t, Migrate(SQLite, dsn))

	var tables int
	err = srv.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'notes')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 2, tables)
}

func TestForeignKeysEnforced(t *testing.T) {
	srv, _ := newSQLiteService(t)

	_, err := srv.DB().Exec(`INSERT INTO notes (content, user_id) VALUES ('orphan', 42)`)
	assert.Error(t, err)
}
