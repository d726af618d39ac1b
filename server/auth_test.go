package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/finfeed/pkg/auth"
	"github.com/umputun/finfeed/pkg/domain"
)

func TestServer_registerHandler(t *testing.T) {
	authMock := testAuth()
	authMock.RegisterFunc = func(_ context.Context, email, _ string) (*domain.User, *domain.Token, error) {
		switch email {
		case "taken@example.com":
			return nil, nil, auth.ErrEmailTaken
		case "broken@example.com":
			return nil, nil, errors.New("db error")
		}
		return &domain.User{ID: 7, Email: email}, &domain.Token{Plaintext: "NEWTOKEN", Expiry: time.Now().Add(time.Hour)}, nil
	}
	srv := testServer(t, Params{Auth: authMock})

	t.Run("created", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/auth/register", `{"email":"new@example.com","password":"secret123"}`, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.JSONEq(t, `{"token":"NEWTOKEN","user":{"id":7,"email":"new@example.com"}}`, w.Body.String())
	})

	tbl := []struct {
		name    string
		body    string
		code    int
		errText string
	}{
		{"bad json", `{"email":`, http.StatusBadRequest, "invalid request body"},
		{"missing email", `{"password":"secret123"}`, http.StatusBadRequest, "email is required"},
		{"bad email", `{"email":"nope","password":"secret123"}`, http.StatusBadRequest, "email must be a valid email address"},
		{"short password", `{"email":"a@example.com","password":"abc1"}`, http.StatusBadRequest,
			"password must be 8 to 72 characters long and contain a letter and a digit"},
		{"no digit", `{"email":"a@example.com","password":"abcdefghij"}`, http.StatusBadRequest,
			"password must be 8 to 72 characters long and contain a letter and a digit"},
		{"no letter", `{"email":"a@example.com","password":"1234567890"}`, http.StatusBadRequest,
			"password must be 8 to 72 characters long and contain a letter and a digit"},
		{"email taken", `{"email":"taken@example.com","password":"secret123"}`, http.StatusBadRequest, "email already registered"},
		{"store failure", `{"email":"broken@example.com","password":"secret123"}`, http.StatusInternalServerError, "registration failed"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, srv, http.MethodPost, "/api/auth/register", tt.body, "")
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.errText, decodeBody(t, w)["error"])
		})
	}

	// validation failures never reach the auth service
	assert.Len(t, authMock.RegisterCalls(), 3)
}

func TestServer_loginHandler(t *testing.T) {
	authMock := testAuth()
	authMock.LoginFunc = func(_ context.Context, email, password string) (*domain.User, *domain.Token, error) {
		if email == "broken@example.com" {
			return nil, nil, errors.New("db error")
		}
		if email != "user@example.com" || password != "secret123" {
			return nil, nil, auth.ErrInvalidCredentials
		}
		return testUser, &domain.Token{Plaintext: "LOGINTOKEN"}, nil
	}
	srv := testServer(t, Params{Auth: authMock})

	w := doRequest(t, srv, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"LOGINTOKEN","user":{"id":42,"email":"user@example.com"}}`, w.Body.String())

	w = doRequest(t, srv, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"wrong1234"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", decodeBody(t, w)["error"])

	w = doRequest(t, srv, http.MethodPost, "/api/auth/login", `{"email":"broken@example.com","password":"x"}`, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doRequest(t, srv, http.MethodPost, "/api/auth/login", `{"email":"user@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password is required", decodeBody(t, w)["error"])
}

func TestServer_logoutHandler(t *testing.T) {
	authMock := testAuth()
	authMock.LogoutFunc = func(_ context.Context, userID int64) error {
		assert.Equal(t, int64(42), userID)
		return nil
	}
	srv := testServer(t, Params{Auth: authMock})

	w := doRequest(t, srv, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, authMock.LogoutCalls())

	w = doRequest(t, srv, http.MethodPost, "/api/auth/logout", "", testToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"logged out"}`, w.Body.String())
	assert.Len(t, authMock.LogoutCalls(), 1)

	authMock.LogoutFunc = func(context.Context, int64) error { return errors.New("db error") }
	w = doRequest(t, srv, http.MethodPost, "/api/auth/logout", "", testToken)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
