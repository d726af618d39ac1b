package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/finfeed/pkg/db"
	"github.com/umputun/finfeed/pkg/domain"
)

// SavedRepository handles per-user saved articles
type SavedRepository struct {
	db *sqlx.DB
}

// NewSavedRepository creates a new saved articles repository
func NewSavedRepository(db *sqlx.DB) *SavedRepository {
	return &SavedRepository{db: db}
}

// Save stores article for user. Saving the same url twice is a no-op.
func (r *SavedRepository) Save(ctx context.Context, userID int64, article domain.SavedArticle) error {
	query := r.db.Rebind(`
		INSERT INTO saved_articles (user_id, url, title, source, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, url) DO NOTHING`)
	savedAt := time.Now().UTC()
	return withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, userID, article.URL, article.Title, article.Source, savedAt)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("save article: %w", err)}
		}
		return nil
	})
}

// List returns user's saved articles, most recent first
func (r *SavedRepository) List(ctx context.Context, userID int64) ([]domain.SavedArticle, error) {
	var rows []db.SavedArticle
	query := r.db.Rebind(`
		SELECT id, user_id, url, title, source, saved_at
		FROM saved_articles
		WHERE user_id = ?
		ORDER BY saved_at DESC, id DESC`)
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list saved articles: %w", err)
	}

	res := make([]domain.SavedArticle, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.SavedArticle{
			ID:      row.ID,
			UserID:  row.UserID,
			URL:     row.URL,
			Title:   row.Title,
			Source:  row.Source,
			SavedAt: row.SavedAt.UTC(),
		})
	}
	return res, nil
}

// Delete removes user's saved article by url, missing rows are not an error
func (r *SavedRepository) Delete(ctx context.Context, userID int64, url string) error {
	return r.exec(ctx, "delete saved article", `DELETE FROM saved_articles WHERE user_id = ? AND url = ?`, userID, url)
}

// DeleteByID removes user's saved article by its id, missing rows are not an error
func (r *SavedRepository) DeleteByID(ctx context.Context, userID, id int64) error {
	return r.exec(ctx, "delete saved article by id", `DELETE FROM saved_articles WHERE user_id = ? AND id = ?`, userID, id)
}

// IsSaved checks if user saved the url
func (r *SavedRepository) IsSaved(ctx context.Context, userID int64, url string) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM saved_articles WHERE user_id = ? AND url = ?`)
	if err := r.db.GetContext(ctx, &count, query, userID, url); err != nil {
		return false, fmt.Errorf("check saved article: %w", err)
	}
	return count > 0, nil
}

func (r *SavedRepository) exec(ctx context.Context, op, query string, args ...any) error {
	query = r.db.Rebind(query)
	return withLockRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("%s: %w", op, err)}
		}
		return nil
	})
}
