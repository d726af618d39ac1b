package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound returned when requested row doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate returned when insert hits a unique constraint
	ErrDuplicate = errors.New("duplicate")
)

// criticalError wraps an error to signal lock retry loop to stop
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// withLockRetry runs fn retrying sqlite lock/busy errors with backoff.
// fn returns criticalError for failures not worth retrying, the wrapped error is returned as is.
func withLockRetry(ctx context.Context, fn func() error) error {
	var critical error
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := fn()
		var ce *criticalError
		if errors.As(err, &ce) {
			critical = ce.err
			return nil
		}
		return err
	})
	if critical != nil {
		return critical
	}
	return err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// isUniqueViolation checks for unique constraint errors from sqlite and postgres
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notFound maps sql.ErrNoRows to ErrNotFound
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
