package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/finfeed/pkg/domain"
)

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func createTestUser(t *testing.T, repos *Repositories, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: []byte("hash")}
	require.NoError(t, repos.User.CreateUser(context.Background(), user))
	return user
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))

	// schema init is idempotent
	require.NoError(t, initSchema(context.Background(), repos.DB, "sqlite"))
}

func TestNewRepositories_InvalidDSN(t *testing.T) {
	_, err := NewRepositories(context.Background(), Config{DSN: "file:/nonexistent-dir/sub/finfeed.db?mode=rw"})
	assert.Error(t, err)
}

func TestRepositories_Close(t *testing.T) {
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	assert.NoError(t, repos.Close())
	assert.NoError(t, repos.Close(), "second close should not error")
}

func TestRepositories_Postgres(t *testing.T) {
	dsn := os.Getenv("FINFEED_TEST_PG")
	if dsn == "" {
		t.Skip("FINFEED_TEST_PG not set")
	}
	repos, err := NewRepositories(context.Background(), Config{DSN: dsn})
	require.NoError(t, err)
	defer repos.Close()

	email := "pg-" + time.Now().Format("20060102150405.000000000") + "@example.com"
	user := &domain.User{Email: email, PasswordHash: []byte("hash")}
	require.NoError(t, repos.User.CreateUser(context.Background(), user))
	require.ErrorIs(t, repos.User.CreateUser(context.Background(), &domain.User{Email: email, PasswordHash: []byte("x")}), ErrDuplicate)

	art := domain.SavedArticle{URL: "https://x/1", Title: "T"}
	require.NoError(t, repos.Saved.Save(context.Background(), user.ID, art))
	require.NoError(t, repos.Saved.Save(context.Background(), user.ID, art))
	list, err := repos.Saved.List(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "pgx", driverName("postgres://u:p@localhost:5432/db"))
	assert.Equal(t, "pgx", driverName("postgresql://localhost/db"))
	assert.Equal(t, "sqlite", driverName(":memory:"))
	assert.Equal(t, "sqlite", driverName(DefaultDSN))
}

func TestSplitStatements(t *testing.T) {
	script := `-- comment
CREATE TABLE a (
    id INTEGER
);

-- another
CREATE INDEX i ON a(id);
SELECT 1`
	stmts := splitStatements(script)
	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE TABLE a (\n    id INTEGER\n);", stmts[0])
	assert.Equal(t, "CREATE INDEX i ON a(id);", stmts[1])
	assert.Equal(t, "SELECT 1", stmts[2])
}
