package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/umputun/finfeed/pkg/auth"
	"github.com/umputun/finfeed/pkg/domain"
)

type contextKey string

const userContextKey = contextKey("user")

var errAuthRequired = errors.New("authentication required")

// credentials is the register and login request body
type credentials struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,password"`
}

// userResponse is the public part of a user
type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// authResponse is returned on register and login
type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// authMiddleware resolves the bearer token to a user and puts it in request context
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			renderError(w, r, errAuthRequired, http.StatusUnauthorized)
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			renderError(w, r, auth.ErrInvalidToken, http.StatusUnauthorized)
			return
		}

		user, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				renderError(w, r, auth.ErrTokenExpired, http.StatusUnauthorized)
			case errors.Is(err, auth.ErrInvalidToken):
				renderError(w, r, auth.ErrInvalidToken, http.StatusUnauthorized)
			default:
				log.Printf("[ERROR] failed to authenticate token: %v", err)
				renderError(w, r, errors.New("authentication failed"), http.StatusInternalServerError)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

// currentUser returns the user set by authMiddleware
func currentUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.User)
	return user, ok && user != nil
}

// registerHandler creates an account and returns a token for it
func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := s.decodeAndValidate(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		log.Printf("[ERROR] failed to register user: %v", err)
		renderError(w, r, errors.New("registration failed"), http.StatusInternalServerError)
		return
	}

	log.Printf("[INFO] registered user %d", user.ID)
	renderJSON(w, r, http.StatusCreated, authResponse{Token: token.Plaintext, User: userResponse{ID: user.ID, Email: user.Email}})
}

// loginHandler checks credentials and returns a new token
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := s.decodeAndValidate(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			renderError(w, r, err, http.StatusUnauthorized)
			return
		}
		log.Printf("[ERROR] failed to login: %v", err)
		renderError(w, r, errors.New("login failed"), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, authResponse{Token: token.Plaintext, User: userResponse{ID: user.ID, Email: user.Email}})
}

// logoutHandler revokes all tokens of the current user
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		renderError(w, r, errAuthRequired, http.StatusUnauthorized)
		return
	}

	if err := s.auth.Logout(r.Context(), user.ID); err != nil {
		log.Printf("[ERROR] failed to logout user %d: %v", user.ID, err)
		renderError(w, r, errors.New("logout failed"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		renderError(w, r, errAuthRequired, http.StatusUnauthorized)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"user": userResponse{ID: user.ID, Email: user.Email}})
}
