package domain

import "time"

// FeedSource tells where a feed came from
type FeedSource string

// feed sources
const (
	SourceProvider FeedSource = "provider"
	SourceCache    FeedSource = "cache"
	SourceMock     FeedSource = "mock"
)

// Feed is an ordered set of articles returned for a news query
type Feed struct {
	Articles    []Article  `json:"feed"`
	Items       int        `json:"items"`
	Source      FeedSource `json:"source"`
	RateLimited bool       `json:"rate_limited"`
}

// NewFeed makes a feed for articles from the given source
func NewFeed(articles []Article, src FeedSource) Feed {
	if articles == nil {
		articles = []Article{}
	}
	return Feed{Articles: articles, Items: len(articles), Source: src}
}

// Query holds news filters passed to the provider
type Query struct {
	Tickers  []string
	Topics   []string
	TimeFrom string // provider format YYYYMMDDTHHMM
	Sort     string
	Limit    int
}

// User is a registered account
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Token is a bearer token issued to a user, plaintext is only known at issue time
type Token struct {
	Plaintext string    `json:"token"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	Expiry    time.Time `json:"expiry"`
}

// SavedArticle is an article saved by a user
type SavedArticle struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	URL     string    `json:"url"`
	Title   string    `json:"title"`
	Source  string    `json:"source"`
	SavedAt time.Time `json:"saved_at"`
}
