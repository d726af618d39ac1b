package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/finfeed/pkg/domain"
)

func TestTokenRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, repos, "tok@example.com")
	other := createTestUser(t, repos, "other@example.com")

	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	tok := &domain.Token{Hash: []byte("hash-1"), UserID: user.ID, Expiry: expiry}
	require.NoError(t, repos.Token.CreateToken(ctx, tok))
	require.NoError(t, repos.Token.CreateToken(ctx, &domain.Token{Hash: []byte("hash-2"), UserID: user.ID, Expiry: expiry}))
	require.NoError(t, repos.Token.CreateToken(ctx, &domain.Token{Hash: []byte("hash-3"), UserID: other.ID, Expiry: expiry}))

	t.Run("lookup", func(t *testing.T) {
		u, exp, err := repos.Token.GetUserForToken(ctx, []byte("hash-1"))
		require.NoError(t, err)
		assert.Equal(t, user.ID, u.ID)
		assert.Equal(t, "tok@example.com", u.Email)
		assert.True(t, exp.Equal(expiry), "expiry %v != %v", exp, expiry)
	})

	t.Run("unknown hash", func(t *testing.T) {
		_, _, err := repos.Token.GetUserForToken(ctx, []byte("nope"))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete for user", func(t *testing.T) {
		require.NoError(t, repos.Token.DeleteTokensForUser(ctx, user.ID))
		_, _, err := repos.Token.GetUserForToken(ctx, []byte("hash-1"))
		require.ErrorIs(t, err, ErrNotFound)
		_, _, err = repos.Token.GetUserForToken(ctx, []byte("hash-2"))
		require.ErrorIs(t, err, ErrNotFound)

		u, _, err := repos.Token.GetUserForToken(ctx, []byte("hash-3"))
		require.NoError(t, err, "other user's tokens kept")
		assert.Equal(t, other.ID, u.ID)
	})

	t.Run("delete expired", func(t *testing.T) {
		past := &domain.Token{Hash: []byte("old"), UserID: other.ID, Expiry: time.Now().Add(-time.Hour)}
		require.NoError(t, repos.Token.CreateToken(ctx, past))
		n, err := repos.Token.DeleteExpired(ctx, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		_, _, err = repos.Token.GetUserForToken(ctx, []byte("hash-3"))
		require.NoError(t, err)
	})
}
