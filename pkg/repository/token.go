package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/finfeed/pkg/db"
	"github.com/umputun/finfeed/pkg/domain"
)

// TokenRepository handles bearer tokens
type TokenRepository struct {
	db *sqlx.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateToken stores token hash with its owner and expiry
func (r *TokenRepository) CreateToken(ctx context.Context, token *domain.Token) error {
	query := r.db.Rebind(`INSERT INTO tokens (hash, user_id, expiry) VALUES (?, ?, ?)`)
	return withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, token.Hash, token.UserID, token.Expiry.UTC())
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("create token: %w", err)}
		}
		return nil
	})
}

// GetUserForToken returns the token owner and token expiry for a token hash.
// Expiry is not checked here, ErrNotFound returned for unknown hash.
func (r *TokenRepository) GetUserForToken(ctx context.Context, hash []byte) (*domain.User, time.Time, error) {
	var row db.TokenUser
	query := r.db.Rebind(`
		SELECT u.id, u.email, u.password_hash, u.created_at, t.expiry
		FROM tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.hash = ?`)
	if err := r.db.GetContext(ctx, &row, query, hash); err != nil {
		return nil, time.Time{}, fmt.Errorf("get user for token: %w", notFound(err))
	}
	return toDomainUser(row.User), row.Expiry.UTC(), nil
}

// DeleteTokensForUser revokes every token of the user
func (r *TokenRepository) DeleteTokensForUser(ctx context.Context, userID int64) error {
	query := r.db.Rebind(`DELETE FROM tokens WHERE user_id = ?`)
	return withLockRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("delete tokens for user %d: %w", userID, err)}
		}
		return nil
	})
}

// DeleteExpired removes tokens expired before now, returns number of removed tokens
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tokens WHERE expiry < ?`), now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get affected rows: %w", err)
	}
	return n, nil
}
