package db

import (
	"context"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func newSQLite(t *testing.T, url string) *HDb {
	t.Helper()
	hdb, err := NewHDb(SQLiteDriver, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = hdb.Close() })
	return hdb
}

func TestNewHDbRejectsUnknownDriver(t *testing.T) {
	_, err := NewHDb("oracle", "whatever")

	assert.True(t, errors.Is(err, errors.NotSupported), "got %v", err)
}

func TestEnsureSchemaCreatesTables(t *testing.T) {
	ctx := context.Background()
	hdb := newSQLite(t, ":memory:")

	require.NoError(t, hdb.EnsureSchema(ctx))
	// Running it again leaves existing tables alone.
	require.NoError(t, hdb.EnsureSchema(ctx))

	var tables []string
	require.NoError(t, hdb.SelectContext(ctx, &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('courses', 'user_account') ORDER BY name"))
	assert.Equal(t, []string{"courses", "user_account"}, tables)
}

func TestSchemaConstraints(t *testing.T) {
	ctx := context.Background()
	hdb := newSQLite(t, ":memory:")
	require.NoError(t, hdb.EnsureSchema(ctx))

	insert := "INSERT INTO courses (name, category, rating, author) VALUES (?, ?, ?, ?)"
	_, err := hdb.ExecContext(ctx, insert, "Go", "Programming", 6, "Rob")
	assert.Error(t, err, "rating above 5 must be refused")

	_, err = hdb.ExecContext(ctx, insert, "Go", "Programming", 5, "Rob")
	require.NoError(t, err)

	_, err = hdb.ExecContext(ctx, "INSERT INTO user_account (username, password, role) VALUES ('u', 'p', 'USER')")
	require.NoError(t, err)
	_, err = hdb.ExecContext(ctx, "INSERT INTO user_account (username, password, role) VALUES ('u', 'q', 'USER')")
	assert.Error(t, err, "usernames are unique")
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalogue.db")

	first := newSQLite(t, path)
	require.NoError(t, first.EnsureSchema(ctx))
	_, err := first.ExecContext(ctx, "INSERT INTO courses (name, category, rating, author) VALUES ('Go', 'Programming', 5, 'Rob')")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newSQLite(t, path)
	require.NoError(t, second.EnsureSchema(ctx))
	var count int
	require.NoError(t, second.GetContext(ctx, &count, "SELECT COUNT(*) FROM courses"))
	assert.Equal(t, 1, count)
}

func TestIsNoRows(t *testing.T) {
	ctx := context.Background()
	hdb := newSQLite(t, ":memory:")
	require.NoError(t, hdb.EnsureSchema(ctx))

	var name string
	err := hdb.GetContext(ctx, &name, "SELECT name FROM courses WHERE id = ?", 42)

	assert.True(t, IsNoRows(err))
	assert.False(t, IsNoRows(errors.New("boom")))
	assert.False(t, IsNoRows(nil))
}

func TestLoadDDLPerDriver(t *testing.T) {
	for _, driver := range []string{PostgresDriver, SQLiteDriver} {
		t.Run(driver, func(t *testing.T) {
			ddl, err := ddlLoaders[driver].LoadDDL()
			require.NoError(t, err)
			assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS courses")
			assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS user_account")
		})
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "CREATE TABLE x (", firstLine("CREATE TABLE x (\n  id INT\n)"))
	assert.Equal(t, "DROP TABLE x", firstLine("DROP TABLE x"))
}

func TestLowerFuncFoldsUnicode(t *testing.T) {
	ctx := context.Background()
	hdb := newSQLite(t, ":memory:")

	var lowered string
	require.NoError(t, hdb.GetContext(ctx, &lowered, "SELECT "+hdb.LowerFunc()+"(?)", "ÉCOLE Française"))
	assert.Equal(t, "école française", lowered)

	var missing *string
	require.NoError(t, hdb.GetContext(ctx, &missing, "SELECT "+hdb.LowerFunc()+"(NULL)"))
	assert.Nil(t, missing)
}
