// Package auth registers users, checks passwords and issues opaque bearer tokens.
// Only sha256 of a token is stored, the plaintext is returned once at issue time.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/umputun/finfeed/pkg/domain"
	"github.com/umputun/finfeed/pkg/repository"
)

//go:generate moq -out mocks/users.go -pkg mocks -skip-ensure -fmt goimports . UserStore
//go:generate moq -out mocks/tokens.go -pkg mocks -skip-ensure -fmt goimports . TokenStore

// DefaultTokenTTL is lifetime of issued tokens
const DefaultTokenTTL = 24 * time.Hour

var (
	// ErrEmailTaken returned on registration with an existing email
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials returned on login with unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken returned for unknown or malformed token
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired returned for a known token past its expiry
	ErrTokenExpired = errors.New("token expired")
)

// UserStore persists user accounts
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenStore persists token hashes
type TokenStore interface {
	CreateToken(ctx context.Context, token *domain.Token) error
	GetUserForToken(ctx context.Context, hash []byte) (*domain.User, time.Time, error)
	DeleteTokensForUser(ctx context.Context, userID int64) error
}

// Service implements registration, login and token checks
type Service struct {
	users    UserStore
	tokens   TokenStore
	tokenTTL time.Duration
	cost     int
	now      func() time.Time
}

// Params for NewService, zero TokenTTL and BcryptCost get defaults
type Params struct {
	Users      UserStore
	Tokens     TokenStore
	TokenTTL   time.Duration
	BcryptCost int
}

// NewService makes auth service
func NewService(p Params) *Service {
	res := &Service{users: p.Users, tokens: p.Tokens, tokenTTL: p.TokenTTL, cost: p.BcryptCost, now: time.Now}
	if res.tokenTTL <= 0 {
		res.tokenTTL = DefaultTokenTTL
	}
	if res.cost < bcrypt.MinCost || res.cost > bcrypt.MaxCost {
		res.cost = bcrypt.DefaultCost
	}
	return res
}

// Register creates a user and issues a token for it
func (s *Service) Register(ctx context.Context, email, password string) (*domain.User, *domain.Token, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: normalizeEmail(email), PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("register %s: %w", user.Email, err)
	}

	token, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Login checks credentials and issues a new token
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, *domain.Token, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("check password: %w", err)
	}

	token, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Authenticate resolves a plaintext bearer token to its user
func (s *Service) Authenticate(ctx context.Context, plaintext string) (*domain.User, error) {
	plaintext = strings.TrimSpace(plaintext)
	if plaintext == "" {
		return nil, ErrInvalidToken
	}

	user, expiry, err := s.tokens.GetUserForToken(ctx, hashToken(plaintext))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !s.now().Before(expiry) {
		return nil, ErrTokenExpired
	}
	return user, nil
}

// Logout revokes all tokens of the user
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if err := s.tokens.DeleteTokensForUser(ctx, userID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// issue generates and stores a token for user
func (s *Service) issue(ctx context.Context, userID int64) (*domain.Token, error) {
	token, err := generateToken(userID, s.now().Add(s.tokenTTL))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.tokens.CreateToken(ctx, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

// generateToken makes 16 random bytes encoded as 26 chars of base32
func generateToken(userID int64, expiry time.Time) (*domain.Token, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, err
	}
	plaintext := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	return &domain.Token{Plaintext: plaintext, Hash: hashToken(plaintext), UserID: userID, Expiry: expiry.UTC()}, nil
}

func hashToken(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
