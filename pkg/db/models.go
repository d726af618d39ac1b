// Package db defines row models mapped by sqlx, repositories convert them to domain types
package db

import (
	"time"
)

// User is a row of users table
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// TokenUser is a user joined with token expiry
type TokenUser struct {
	User
	Expiry time.Time `db:"expiry"`
}

// SavedArticle is a row of saved_articles table
type SavedArticle struct {
	ID      int64     `db:"id"`
	UserID  int64     `db:"user_id"`
	URL     string    `db:"url"`
	Title   string    `db:"title"`
	Source  string    `db:"source"`
	SavedAt time.Time `db:"saved_at"`
}
