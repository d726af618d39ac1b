package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/finfeed/pkg/db"
	"github.com/umputun/finfeed/pkg/domain"
)

// UserRepository handles user accounts
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a user and sets its ID and CreatedAt. Email is stored lower-cased,
// ErrDuplicate returned if it is taken.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	row := db.User{
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	query := r.db.Rebind(`INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?) RETURNING id`)
	err := withLockRetry(ctx, func() error {
		err := r.db.QueryRowxContext(ctx, query, row.Email, row.PasswordHash, row.CreatedAt).Scan(&row.ID)
		switch {
		case err == nil:
			return nil
		case isLockError(err):
			return err // retry
		case isUniqueViolation(err):
			return &criticalError{err: fmt.Errorf("create user %s: %w", row.Email, ErrDuplicate)}
		default:
			return &criticalError{err: fmt.Errorf("create user: %w", err)}
		}
	})
	if err != nil {
		return err
	}

	user.ID, user.Email, user.CreatedAt = row.ID, row.Email, row.CreatedAt
	return nil
}

// GetUserByEmail retrieves a user by email, case-insensitive
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row db.User
	query := r.db.Rebind(`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`)
	if err := r.db.GetContext(ctx, &row, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return nil, fmt.Errorf("get user by email: %w", notFound(err))
	}
	return toDomainUser(row), nil
}

// GetUser retrieves a user by ID
func (r *UserRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var row db.User
	query := r.db.Rebind(`SELECT id, email, password_hash, created_at FROM users WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, notFound(err))
	}
	return toDomainUser(row), nil
}

func toDomainUser(row db.User) *domain.User {
	return &domain.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}
